package external

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchBuildsQueryAndDecodesEntities(t *testing.T) {
	var seen map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		seen = map[string]string{
			"amount":     r.URL.Query().Get("amount"),
			"difficulty": r.URL.Query().Get("difficulty"),
			"category":   r.URL.Query().Get("category"),
		}
		fmt.Fprint(w, `{"response_code":0,"results":[{"category":"Science &amp; Nature","type":"multiple","difficulty":"easy","question":"What is &quot;H2O&quot;?","correct_answer":"Water","incorrect_answers":["Salt","Sugar &amp; Spice"]}]}`)
	}))
	defer srv.Close()

	client := NewOpenTDBClient(srv.URL+"/", srv.Client())
	got, err := client.Fetch(context.Background(), FetchRequest{Amount: 3, Difficulty: "easy", Category: 17})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, map[string]string{"amount": "3", "difficulty": "easy", "category": "17"}, seen)
	assert.Equal(t, "Science & Nature", got[0].Category)
	assert.Equal(t, `What is "H2O"?`, got[0].Question)
	assert.Equal(t, []string{"Salt", "Sugar & Spice"}, got[0].IncorrectAnswer)
}

func TestFetchClampsAmount(t *testing.T) {
	var amounts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		amounts = append(amounts, r.URL.Query().Get("amount"))
		fmt.Fprint(w, `{"response_code":0,"results":[]}`)
	}))
	defer srv.Close()

	client := NewOpenTDBClient(srv.URL, srv.Client())
	_, err := client.Fetch(context.Background(), FetchRequest{})
	require.NoError(t, err)
	_, err = client.Fetch(context.Background(), FetchRequest{Amount: 500})
	require.NoError(t, err)

	assert.Equal(t, []string{"10", "50"}, amounts)
}

func TestFetchResponseCodes(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "no results", status: http.StatusOK, body: `{"response_code":1,"results":[]}`},
		{name: "invalid parameter", status: http.StatusOK, body: `{"response_code":2,"results":[]}`, wantErr: true},
		{name: "upstream failure", status: http.StatusBadGateway, body: ``, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			got, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), FetchRequest{Amount: 5})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}
