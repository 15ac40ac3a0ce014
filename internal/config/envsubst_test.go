package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "omdb-123")
	t.Setenv("REELGO_JWT_SECRET", "")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("REELGO_STORE_PATH", "")

	tests := []struct {
		name    string
		in      string
		want    string
		missing []string
	}{
		{
			name: "plain reference",
			in:   `api_key = "${OMDB_API_KEY}"`,
			want: `api_key = "omdb-123"`,
		},
		{
			name:    "unset plain reference",
			in:      `api_key = "${REELGO_NEVER_SET_KEY}"`,
			want:    `api_key = "${REELGO_NEVER_SET_KEY}"`,
			missing: []string{"REELGO_NEVER_SET_KEY"},
		},
		{
			name: "default used when empty",
			in:   `path = "${REELGO_STORE_PATH:-./data/reelgo.db}"`,
			want: `path = "./data/reelgo.db"`,
		},
		{
			name: "env overrides default",
			in:   `url = "${REDIS_URL:-redis://localhost:6379/0}"`,
			want: `url = "redis://cache:6379/1"`,
		},
		{
			name: "empty default",
			in:   `api_key = "${REELGO_NEVER_SET_KEY:-}"`,
			want: `api_key = ""`,
		},
		{
			name:    "required and empty",
			in:      `jwt_secret = "${REELGO_JWT_SECRET:?set a secret}"`,
			want:    `jwt_secret = "${REELGO_JWT_SECRET:?set a secret}"`,
			missing: []string{"REELGO_JWT_SECRET: set a secret"},
		},
		{
			name: "comment lines are left alone",
			in:   "# ${VAR} and ${VAR:?message}\n  # ${OMDB_API_KEY}\napi_key = \"${OMDB_API_KEY}\"\n",
			want: "# ${VAR} and ${VAR:?message}\n  # ${OMDB_API_KEY}\napi_key = \"omdb-123\"\n",
		},
		{
			name:    "several on one line",
			in:      `${OMDB_API_KEY} ${REELGO_NEVER_SET_KEY} ${REELGO_STORE_PATH:-db}`,
			want:    `omdb-123 ${REELGO_NEVER_SET_KEY} db`,
			missing: []string{"REELGO_NEVER_SET_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.missing, missing)
		})
	}
}
