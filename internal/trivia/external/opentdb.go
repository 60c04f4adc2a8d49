package external

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAmount = 10
	maxAmount     = 50
)

// OpenTDBClient fetches questions from the Open Trivia DB (no API key).
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenTDBClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// OpenTDBQuestion is one result with HTML entities already decoded.
type OpenTDBQuestion struct {
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty"`
	Question        string   `json:"question"`
	CorrectAnswer   string   `json:"correct_answer"`
	IncorrectAnswer []string `json:"incorrect_answers"`
}

// FetchRequest narrows an OpenTDB query. Zero values leave a filter unset.
type FetchRequest struct {
	Amount     int
	Difficulty string
	Category   int
}

type openTDBResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []OpenTDBQuestion `json:"results"`
}

// OpenTDB response codes.
const (
	codeSuccess   = 0
	codeNoResults = 1
)

func (c *OpenTDBClient) Fetch(ctx context.Context, req FetchRequest) ([]OpenTDBQuestion, error) {
	amount := req.Amount
	if amount <= 0 {
		amount = defaultAmount
	}
	amount = min(amount, maxAmount)

	values := url.Values{}
	values.Set("amount", strconv.Itoa(amount))
	if req.Difficulty != "" {
		values.Set("difficulty", req.Difficulty)
	}
	if req.Category > 0 {
		values.Set("category", strconv.Itoa(req.Category))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api.php?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("opentdb non-200: %d", resp.StatusCode)
	}

	var payload openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	switch payload.ResponseCode {
	case codeSuccess:
	case codeNoResults:
		return []OpenTDBQuestion{}, nil
	default:
		return nil, fmt.Errorf("opentdb response code %d", payload.ResponseCode)
	}

	for i := range payload.Results {
		unescape(&payload.Results[i])
	}
	return payload.Results, nil
}

func unescape(q *OpenTDBQuestion) {
	q.Category = html.UnescapeString(q.Category)
	q.Question = html.UnescapeString(q.Question)
	q.CorrectAnswer = html.UnescapeString(q.CorrectAnswer)
	for i, a := range q.IncorrectAnswer {
		q.IncorrectAnswer[i] = html.UnescapeString(a)
	}
}
