package challengedb_test

import (
	"net/http"
	"testing"

	"github.com/sagarc03/challengedb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationFromMethod(t *testing.T) {
	tests := []struct {
		method string
		want   challengedb.Operation
	}{
		{method: http.MethodPost, want: challengedb.OpCreate},
		{method: http.MethodPut, want: challengedb.OpReplace},
		{method: http.MethodDelete, want: challengedb.OpDelete},
		{method: http.MethodGet, want: challengedb.OpRead},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			op, err := challengedb.OperationFromMethod(tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
			assert.Equal(t, tt.method, op.HTTPMethod())
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := challengedb.OperationFromMethod(http.MethodPatch)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported method")
	})
}

func TestTables_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tables  challengedb.Tables
		wantErr string
	}{
		{name: "valid", tables: challengedb.Tables{Challenges: "challenges"}},
		{name: "empty", tables: challengedb.Tables{}, wantErr: "cannot be empty"},
		{name: "uppercase", tables: challengedb.Tables{Challenges: "Challenges"}, wantErr: "invalid challenges table name"},
		{name: "injection", tables: challengedb.Tables{Challenges: "x; DROP TABLE y"}, wantErr: "invalid challenges table name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tables.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
