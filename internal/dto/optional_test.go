package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issue-hub/internal/model"
)

func TestOptionalPresence(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTitle Optional[string]
		wantDesc  Optional[string]
	}{
		{
			name: "both absent",
			body: `{"id":"x"}`,
		},
		{
			name:      "title present",
			body:      `{"id":"x","title":" Foo "}`,
			wantTitle: Some(" Foo "),
		},
		{
			name:     "explicit empty description",
			body:     `{"id":"x","description":""}`,
			wantDesc: Some(""),
		},
		{
			name:     "explicit null description",
			body:     `{"id":"x","description":null}`,
			wantDesc: Some(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateProjectRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, "x", req.ID)
			assert.Equal(t, tt.wantTitle, req.Title)
			assert.Equal(t, tt.wantDesc, req.Description)
		})
	}
}

func TestIssueUpdateEmpty(t *testing.T) {
	var req UpdateIssueRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x"}`), &req))
	assert.True(t, req.IssueUpdate.Empty())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","status":"CLOSED"}`), &req))
	assert.False(t, req.IssueUpdate.Empty())
	assert.Equal(t, Some(model.IssueStatusClosed), req.Status)
}

func TestOptionalTypeMismatch(t *testing.T) {
	var req UpdateProjectRequest
	err := json.Unmarshal([]byte(`{"title":12}`), &req)
	require.Error(t, err)
}

func TestOptionalMarshal(t *testing.T) {
	data, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
	}{A: Some("v")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"v","b":null}`, string(data))
}
