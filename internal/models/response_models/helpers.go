package response_models

import "github.com/google/uuid"

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func orEmptyMap(m map[string]interface{}) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
