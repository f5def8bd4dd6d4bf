package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sagarc03/challengedb"
	challengehttp "github.com/sagarc03/challengedb/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_JSONShape(t *testing.T) {
	tt := []struct {
		Name string
		Resp challengehttp.Response
		Want string
	}{
		{
			Name: "created",
			Resp: challengehttp.Response{ChallengeID: 4, Result: true},
			Want: `{"challengeId":4,"result":true}`,
		},
		{
			Name: "failure keeps result false",
			Resp: challengehttp.Response{Reason: challengehttp.ReasonCreateFailed},
			Want: `{"result":false,"reason":"Something went wrong"}`,
		},
		{
			Name: "read",
			Resp: challengehttp.Response{
				Challenge: &challengedb.Challenge{ID: 1, Name: "A", Date: "2024-01-01"},
				Result:    true,
			},
			Want: `{"challenge":{"id":1,"name":"A","description":"","date":"2024-01-01"},"result":true}`,
		},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			b, err := json.Marshal(tc.Resp)
			require.NoError(t, err)
			assert.JSONEq(t, tc.Want, string(b))
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	challengehttp.WriteError(rec, http.StatusNotFound, "not_found", "Route not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not_found","message":"Route not found"}`, rec.Body.String())
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	err := challengehttp.WriteJSON(rec, http.StatusOK, map[string]bool{"result": true})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":true}`, rec.Body.String())
}

func TestWriteUnauthorized(t *testing.T) {
	rec := httptest.NewRecorder()
	challengehttp.WriteUnauthorized(rec)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
