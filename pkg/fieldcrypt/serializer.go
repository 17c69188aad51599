package fieldcrypt

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm/schema"
)

// SerializerName is the value used in `gorm:"serializer:encrypted"` tags.
const SerializerName = "encrypted"

// Serializer encrypts string fields on write and decrypts them on read.
type Serializer struct {
	Cipher *Cipher
}

// Register installs the serializer in gorm's global registry.
func Register(c *Cipher) {
	schema.RegisterSerializer(SerializerName, Serializer{Cipher: c})
}

func (s Serializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	var stored string
	switch v := dbValue.(type) {
	case nil:
		return nil
	case string:
		stored = v
	case []byte:
		stored = string(v)
	default:
		return fmt.Errorf("encrypted field %s: unsupported database type %T", field.Name, dbValue)
	}

	plain, err := s.Cipher.Decrypt(stored)
	if err != nil {
		return fmt.Errorf("encrypted field %s: %w", field.Name, err)
	}

	field.ReflectValueOf(ctx, dst).SetString(plain)
	return nil
}

func (s Serializer) Value(ctx context.Context, field *schema.Field, dst reflect.Value, fieldValue interface{}) (interface{}, error) {
	plain, ok := fieldValue.(string)
	if !ok {
		return nil, fmt.Errorf("encrypted field %s: expected string, got %T", field.Name, fieldValue)
	}
	return s.Cipher.Encrypt(plain)
}
