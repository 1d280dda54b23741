package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"terminfinder-api/core/config"
	"terminfinder-api/core/database"
	"terminfinder-api/core/database/databasetest"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DatabaseConfig
		want    string
		wantErr bool
	}{
		{
			name: "postgres",
			cfg:  config.DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", DBName: "tf"},
			want: "host=db port=5432 user=u password=p dbname=tf sslmode=disable",
		},
		{
			name: "sqlite3",
			cfg:  config.DatabaseConfig{Driver: "sqlite3", Path: "/tmp/x.db"},
			want: "file:/tmp/x.db?",
		},
		{
			name:    "unknown",
			cfg:     config.DatabaseConfig{Driver: "oracle"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := database.DSN(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DSN: %v", err)
			}
			if !strings.HasPrefix(got, tt.want) {
				t.Fatalf("DSN = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestMigrationsAndUniqueViolation(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()

	insert := db.Rebind(`INSERT INTO schedule_groups (code, password_hash, created_at, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	if err := db.ExecContext(ctx, insert, "team", "hash"); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := db.ExecContext(ctx, insert, "team", "hash")
	if err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
	if !database.IsUniqueViolation(err) {
		t.Fatalf("IsUniqueViolation(%v) = false", err)
	}
	if database.IsUniqueViolation(errors.New("boom")) {
		t.Fatal("plain error reported as unique violation")
	}
	if database.IsUniqueViolation(nil) {
		t.Fatal("nil reported as unique violation")
	}
}
