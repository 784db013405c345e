// Package dataset loads legal QA question banks. Bar Exam QA is pulled as
// CSV straight from the HuggingFace hub.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultHubBaseURL = "https://huggingface.co/datasets"
	barExamRepo       = "reglab/barexam_qa"

	defaultTimeout = 2 * time.Minute
)

// Question is one multiple-choice legal question with its ground truth
type Question struct {
	ID          string
	Prompt      string
	Question    string
	Choices     []string
	Answer      string
	GoldPassage string
	GoldIdx     string
}

// Loader downloads question bank splits over HTTP
type Loader struct {
	httpClient *http.Client
	baseURL    string
}

// LoaderOption configures the Loader
type LoaderOption func(*Loader)

// WithBaseURL sets a custom hub base URL
func WithBaseURL(url string) LoaderOption {
	return func(l *Loader) {
		l.baseURL = url
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.httpClient.Timeout = d
	}
}

// NewLoader creates a question bank loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultHubBaseURL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadBarExamQA downloads and parses one split of the Bar Exam QA dataset.
// sampleSize limits the number of questions returned; zero means all.
func (l *Loader) LoadBarExamQA(ctx context.Context, split string, sampleSize int) ([]Question, error) {
	switch split {
	case "train", "validation", "test":
	default:
		return nil, fmt.Errorf("unknown split %q", split)
	}

	url := fmt.Sprintf("%s/%s/resolve/main/data/qa/%s.csv", l.baseURL, barExamRepo, split)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download split %s: %w", split, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download split %s: status %d", split, resp.StatusCode)
	}

	return parseBarExamCSV(resp.Body, sampleSize)
}

func parseBarExamCSV(r io.Reader, sampleSize int) ([]Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"question", "choice_a", "choice_b", "choice_c", "choice_d", "answer"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var questions []Question
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		id := field(record, "idx")
		if id == "" {
			id = strconv.Itoa(row)
		}

		questions = append(questions, Question{
			ID:       id,
			Prompt:   field(record, "prompt"),
			Question: field(record, "question"),
			Choices: []string{
				field(record, "choice_a"),
				field(record, "choice_b"),
				field(record, "choice_c"),
				field(record, "choice_d"),
			},
			Answer:      field(record, "answer"),
			GoldPassage: field(record, "gold_passage"),
			GoldIdx:     field(record, "gold_idx"),
		})

		if sampleSize > 0 && len(questions) >= sampleSize {
			break
		}
	}

	return questions, nil
}
