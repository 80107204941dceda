// Package prompts holds the prompt text sent to the LLM for problem
// generation and solution review.
package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// MaxScore is the top of the evaluation scale.
const MaxScore = 20

// Band describes the kind of problem asked for a range of levels.
type Band struct {
	Min         int    `yaml:"min"`
	Max         int    `yaml:"max"`
	Description string `yaml:"description"`
}

// Contains reports whether level falls inside the band.
func (b Band) Contains(level int) bool {
	return level >= b.Min && level <= b.Max
}

// Prompt is a system and user template pair.
type Prompt struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type levelRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type document struct {
	Language   string     `yaml:"language"`
	Levels     levelRange `yaml:"levels"`
	Bands      []Band     `yaml:"bands"`
	Generation Prompt     `yaml:"generation"`
	Evaluation Prompt     `yaml:"evaluation"`
}

// Set is a parsed, validated prompt document. It is safe for concurrent use.
type Set struct {
	doc document

	genSystem  *template.Template
	genUser    *template.Template
	evalSystem *template.Template
	evalUser   *template.Template
}

// Rendered is a prompt ready to send.
type Rendered struct {
	System string
	User   string
}

// Default returns the embedded prompt set.
func Default() (*Set, error) {
	return Parse(defaultPrompts)
}

// Load returns the embedded prompt set with the YAML file at path layered on
// top. An empty path yields the embedded set.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(defaultPrompts, &doc); err != nil {
		return nil, fmt.Errorf("parse embedded prompts: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return build(doc)
}

// Parse builds a Set from a complete YAML document.
func Parse(data []byte) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	return build(doc)
}

func build(doc document) (*Set, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	s := &Set{doc: doc}
	var err error
	if s.genSystem, err = parseTemplate("generation.system", doc.Generation.System); err != nil {
		return nil, err
	}
	if s.genUser, err = parseTemplate("generation.user", doc.Generation.User); err != nil {
		return nil, err
	}
	if s.evalSystem, err = parseTemplate("evaluation.system", doc.Evaluation.System); err != nil {
		return nil, err
	}
	if s.evalUser, err = parseTemplate("evaluation.user", doc.Evaluation.User); err != nil {
		return nil, err
	}
	return s, nil
}

func parseTemplate(name, text string) (*template.Template, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", name, err)
	}
	return t, nil
}

func (d document) validate() error {
	if d.Language == "" {
		return fmt.Errorf("prompts: language is required")
	}
	if d.Levels.Min < 1 || d.Levels.Max < d.Levels.Min {
		return fmt.Errorf("prompts: invalid level range %d-%d", d.Levels.Min, d.Levels.Max)
	}
	if strings.TrimSpace(d.Generation.User) == "" {
		return fmt.Errorf("prompts: generation.user is required")
	}
	if strings.TrimSpace(d.Evaluation.User) == "" {
		return fmt.Errorf("prompts: evaluation.user is required")
	}

	// Bands must tile the level range in order.
	next := d.Levels.Min
	for i, b := range d.Bands {
		if b.Min != next || b.Max < b.Min {
			return fmt.Errorf("prompts: band %d (%d-%d) does not continue from level %d", i, b.Min, b.Max, next)
		}
		if strings.TrimSpace(b.Description) == "" {
			return fmt.Errorf("prompts: band %d has no description", i)
		}
		next = b.Max + 1
	}
	if next != d.Levels.Max+1 {
		return fmt.Errorf("prompts: bands end at level %d, want %d", next-1, d.Levels.Max)
	}
	return nil
}

// Language is the language solutions are expected in.
func (s *Set) Language() string { return s.doc.Language }

// Bands returns the level bands in order.
func (s *Set) Bands() []Band {
	return append([]Band(nil), s.doc.Bands...)
}

// BandFor returns the band containing level.
func (s *Set) BandFor(level int) (Band, bool) {
	for _, b := range s.doc.Bands {
		if b.Contains(level) {
			return b, true
		}
	}
	return Band{}, false
}

// Generation renders the problem generation prompt for level.
func (s *Set) Generation(level int) (Rendered, error) {
	band, ok := s.BandFor(level)
	if !ok {
		return Rendered{}, fmt.Errorf("level %d is outside %d-%d", level, s.doc.Levels.Min, s.doc.Levels.Max)
	}
	data := map[string]any{
		"Level": level,
		"Min":   s.doc.Levels.Min,
		"Max":   s.doc.Levels.Max,
		"Band":  band,
		"Bands": s.doc.Bands,
	}
	return render(s.genSystem, s.genUser, data)
}

// Evaluation renders the solution review prompt.
func (s *Set) Evaluation(problem, solution string) (Rendered, error) {
	data := map[string]any{
		"Problem":  problem,
		"Solution": solution,
		"Language": s.doc.Language,
		"MaxScore": MaxScore,
	}
	return render(s.evalSystem, s.evalUser, data)
}

func render(system, user *template.Template, data any) (Rendered, error) {
	var sys, usr bytes.Buffer
	if err := system.Execute(&sys, data); err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", system.Name(), err)
	}
	if err := user.Execute(&usr, data); err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", user.Name(), err)
	}
	return Rendered{
		System: strings.TrimSpace(sys.String()),
		User:   strings.TrimSpace(usr.String()),
	}, nil
}
