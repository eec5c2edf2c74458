package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type QueryRequest struct {
	Message string `json:"message"`
}

type Reply struct {
	Reply          string `json:"reply"`
	Specialization string `json:"specialization,omitempty"`
	SuggestedName  string `json:"suggested_doctor,omitempty"`
	Source         string `json:"source"` // "upstream" or "fallback"
}

// Upstream is the external assistant. The real implementation posts to a
// hosted model; tests stub it.
type Upstream interface {
	Ask(ctx context.Context, message string) (string, error)
}

type httpUpstream struct {
	url    string
	apiKey string
	client *http.Client
}

// NewHTTPUpstream talks to the configured assistant endpoint.
func NewHTTPUpstream(url, apiKey string) Upstream {
	return &httpUpstream{url: url, apiKey: apiKey, client: &http.Client{Timeout: 10 * time.Second}}
}

func (u *httpUpstream) Ask(ctx context.Context, message string) (string, error) {
	if u.url == "" {
		return "", fmt.Errorf("no upstream configured")
	}
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream returned %d", resp.StatusCode)
	}
	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Reply == "" {
		return "", fmt.Errorf("empty upstream reply")
	}
	return out.Reply, nil
}

// rule maps symptom keywords to a specialization and a doctor to suggest.
type rule struct {
	keywords       []string
	specialization string
	doctor         string
}

var rules = []rule{
	{[]string{"chest", "breath", "heart"}, "Cardiologist", "Dr. Aarav Nair"},
	{[]string{"skin", "rash", "itch"}, "Dermatologist", "Dr. Kavya Menon"},
	{[]string{"head", "migraine", "dizzy"}, "Neurologist", "Dr. Rohan Iyer"},
	{[]string{"child", "baby", "infant"}, "Pediatrician", "Dr. Ananya Rao"},
	{[]string{"bone", "joint", "fracture"}, "Orthopedist", "Dr. Vikram Singh"},
	{[]string{"tooth", "teeth", "gum"}, "Dentist", "Dr. Priya Das"},
}

const defaultSpecialization = "General Physician"
const defaultDoctor = "Dr. Sameer Kulkarni"

// Fallback is the deterministic keyword triage used when the upstream
// assistant is unavailable.
func Fallback(message string) Reply {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return Reply{
					Reply: fmt.Sprintf("Based on your symptoms you should consult a %s. %s is available for booking.",
						r.specialization, r.doctor),
					Specialization: r.specialization,
					SuggestedName:  r.doctor,
					Source:         "fallback",
				}
			}
		}
	}
	return Reply{
		Reply: fmt.Sprintf("I recommend starting with a %s. %s is available for booking.",
			defaultSpecialization, defaultDoctor),
		Specialization: defaultSpecialization,
		SuggestedName:  defaultDoctor,
		Source:         "fallback",
	}
}

type Service struct {
	upstream Upstream
	log      zerolog.Logger
}

func NewService(upstream Upstream, log zerolog.Logger) *Service {
	return &Service{upstream: upstream, log: log}
}

// Query asks the upstream assistant, retrying once, and falls back to
// keyword triage. Callers always get an answer.
func (s *Service) Query(ctx context.Context, message string) Reply {
	for attempt := 0; attempt < 2; attempt++ {
		answer, err := s.upstream.Ask(ctx, message)
		if err == nil {
			return Reply{Reply: answer, Source: "upstream"}
		}
		s.log.Debug().Err(err).Int("attempt", attempt+1).Msg("chatbot upstream failed")
	}
	return Fallback(message)
}
