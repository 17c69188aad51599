package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"studiocrm/internal/models/db_models"
	"studiocrm/internal/models/request_models"
	"studiocrm/pkg/utils"
)

func TestCredentialLifecycleNeverAuditsSecrets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creatorID := f.createCreator(t, "Secret Keeper")

	created, err := f.credentials.CreateCredential(ctx, operator(), request_models.CreateCredentialRequest{
		CreatorID:            creatorID,
		PlatformName:         "Instagram",
		AccountIdentifier:    "@keeper",
		Password:             "s3cret-pass",
		TwoFactorBackupCodes: "1111 2222 3333",
		APIKeys:              "sk-live-abc",
	})
	if err != nil {
		t.Fatalf("CreateCredential: %v", err)
	}
	if !created.HasPassword || !created.HasAPIKeys || created.HasLoginURL {
		t.Errorf("presence flags = %+v", created)
	}
	if created.BrandName != "Secret Keeper" {
		t.Errorf("brand = %q", created.BrandName)
	}
	id := mustUUID(t, created.ID)

	f.clock.Advance(time.Minute)
	if _, err := f.credentials.UpdateCredential(ctx, operator(), id, request_models.UpdateCredentialRequest{
		Password: strPtr("rotated-pass"),
	}); err != nil {
		t.Fatalf("UpdateCredential: %v", err)
	}

	f.clock.Advance(time.Minute)
	if err := f.credentials.DeleteCredential(ctx, operator(), id); err != nil {
		t.Fatalf("DeleteCredential: %v", err)
	}

	entries := f.entriesFor(t, id)
	wantActions := []db_models.ActionType{db_models.ActionDelete, db_models.ActionUpdate, db_models.ActionCreate}
	if len(entries) != len(wantActions) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantActions))
	}
	for i, e := range entries {
		if e.ActionType != wantActions[i] {
			t.Errorf("entry %d = %s, want %s", i, e.ActionType, wantActions[i])
		}
		if e.TargetDisplay != "Secret Keeper - Instagram" {
			t.Errorf("display = %q", e.TargetDisplay)
		}
		if len(e.Changes) != 2 || e.Changes["platform"] != "Instagram" || e.Changes["account"] != "@keeper" {
			t.Errorf("changes = %v", e.Changes)
		}

		raw, _ := json.Marshal(e)
		for _, secret := range []string{"s3cret-pass", "rotated-pass", "1111 2222", "sk-live-abc"} {
			if strings.Contains(string(raw), secret) {
				t.Errorf("entry %s leaks %q", e.ActionType, secret)
			}
		}
	}

	if _, err := f.credentials.GetCredential(ctx, id); !errors.Is(err, utils.ErrCredentialNotFound) {
		t.Errorf("GetCredential after delete err = %v", err)
	}
}

func TestCredentialIdentityIsUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creatorID := f.createCreator(t, "Dupes")

	req := request_models.CreateCredentialRequest{
		CreatorID:         creatorID,
		PlatformName:      "TikTok",
		AccountIdentifier: "dupes",
	}
	if _, err := f.credentials.CreateCredential(ctx, operator(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := f.credentials.CreateCredential(ctx, operator(), req); !errors.Is(err, utils.ErrDuplicateCredential) {
		t.Fatalf("duplicate err = %v, want ErrDuplicateCredential", err)
	}

	req.AccountIdentifier = "dupes-backup"
	other, err := f.credentials.CreateCredential(ctx, operator(), req)
	if err != nil {
		t.Fatalf("second account: %v", err)
	}
	_, err = f.credentials.UpdateCredential(ctx, operator(), mustUUID(t, other.ID), request_models.UpdateCredentialRequest{
		AccountIdentifier: strPtr("dupes"),
	})
	if !errors.Is(err, utils.ErrDuplicateCredential) {
		t.Errorf("rename onto existing identity err = %v", err)
	}
}

func TestCreateCredentialRequiresExistingCreator(t *testing.T) {
	f := newFixture(t)

	_, err := f.credentials.CreateCredential(context.Background(), operator(), request_models.CreateCredentialRequest{
		CreatorID:         mustUUID(t, "7b0e9a9e-2c55-4a43-9a51-5b5d2e0a0c11"),
		PlatformName:      "YouTube",
		AccountIdentifier: "ghost",
	})
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestRevealRecordsViewEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	creatorID := f.createCreator(t, "Reveal")

	created, err := f.credentials.CreateCredential(ctx, operator(), request_models.CreateCredentialRequest{
		CreatorID:         creatorID,
		PlatformName:      "Shopify",
		AccountIdentifier: "reveal-shop",
		LoginURL:          "https://reveal.myshopify.com/admin",
		Password:          "open-sesame",
	})
	if err != nil {
		t.Fatalf("CreateCredential: %v", err)
	}
	id := mustUUID(t, created.ID)

	f.clock.Advance(time.Minute)
	secrets, err := f.credentials.RevealCredential(ctx, operator(), id)
	if err != nil {
		t.Fatalf("RevealCredential: %v", err)
	}
	if secrets.Password != "open-sesame" || secrets.LoginURL != "https://reveal.myshopify.com/admin" {
		t.Errorf("secrets = %+v", secrets)
	}

	entries := f.entriesFor(t, id)
	if len(entries) != 2 || entries[0].ActionType != db_models.ActionViewCredential {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestListCredentialsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createCreator(t, "Filter A")
	b := f.createCreator(t, "Filter B")

	for _, req := range []request_models.CreateCredentialRequest{
		{CreatorID: a, PlatformName: "Instagram", AccountIdentifier: "a-ig"},
		{CreatorID: a, PlatformName: "Shopify", AccountIdentifier: "a-shop", IsActive: boolPtr(false)},
		{CreatorID: b, PlatformName: "Instagram", AccountIdentifier: "b-ig"},
	} {
		if _, err := f.credentials.CreateCredential(ctx, operator(), req); err != nil {
			t.Fatalf("CreateCredential: %v", err)
		}
	}

	page, err := f.credentials.ListCredentials(ctx, request_models.CredentialListQuery{CreatorID: a.String()})
	if err != nil {
		t.Fatalf("ListCredentials: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("by creator total = %d", page.Total)
	}

	page, err = f.credentials.ListCredentials(ctx, request_models.CredentialListQuery{PlatformNameContains: "insta"})
	if err != nil {
		t.Fatalf("ListCredentials: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("icontains total = %d", page.Total)
	}

	page, err = f.credentials.ListCredentials(ctx, request_models.CredentialListQuery{IsActive: boolPtr(false)})
	if err != nil {
		t.Fatalf("ListCredentials: %v", err)
	}
	if page.Total != 1 || page.Items[0].PlatformName != "Shopify" {
		t.Errorf("inactive = %+v", page.Items)
	}

	if _, err := f.credentials.ListCredentials(ctx, request_models.CredentialListQuery{CreatorID: "nope"}); !errors.Is(err, utils.ErrValidation) {
		t.Errorf("bad creator_id err = %v", err)
	}
}
