package db

import "testing"

func TestMigrationURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/seedstore":   "pgx5://u:p@localhost:5432/seedstore",
		"postgresql://u:p@localhost:5432/seedstore": "pgx5://u:p@localhost:5432/seedstore",
		"pgx5://u:p@localhost/seedstore":            "pgx5://u:p@localhost/seedstore",
	}
	for in, want := range cases {
		if got := migrationURL(in); got != want {
			t.Fatalf("migrationURL(%q) = %q, want %q", in, got, want)
		}
	}
}
