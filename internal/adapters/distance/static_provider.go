package distance

import (
	"city-route-service/internal/ports"
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// StaticPair is one directed entry of a fixed distance table.
type StaticPair struct {
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Meters  int    `yaml:"meters"`
	Seconds int    `yaml:"seconds"`
}

// StaticCall records one Query made against a StaticDistanceProvider.
type StaticCall struct {
	Origin, Destination string
}

// StaticDistanceProvider answers from a fixed table. Pairs not in the table
// are Unavailable. Used for offline runs and tests.
type StaticDistanceProvider struct {
	m map[string]ports.DistanceSample

	mu    sync.Mutex
	calls []StaticCall
}

func NewStaticDistanceProvider(pairs []StaticPair) *StaticDistanceProvider {
	m := make(map[string]ports.DistanceSample, len(pairs))
	for _, p := range pairs {
		m[pairKey(p.From, p.To)] = ports.Measured(p.Meters, p.Seconds)
	}
	return &StaticDistanceProvider{m: m}
}

type staticFile struct {
	Pairs     []StaticPair `yaml:"pairs"`
	Symmetric bool         `yaml:"symmetric"`
}

// LoadStaticDistanceProvider reads a YAML table:
//
//	symmetric: true
//	pairs:
//	  - {from: Quito, to: Ibarra, meters: 115000, seconds: 7200}
//
// With symmetric set, every pair is also registered in reverse unless the
// reverse is listed explicitly.
func LoadStaticDistanceProvider(path string) (*StaticDistanceProvider, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load static distances: read %q: %w", path, err)
	}

	var f staticFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("load static distances: parse %q: %w", path, err)
	}

	pairs := make([]StaticPair, 0, 2*len(f.Pairs))
	listed := make(map[string]struct{}, len(f.Pairs))
	for i, p := range f.Pairs {
		if p.From == "" || p.To == "" {
			return nil, fmt.Errorf("load static distances: pair #%d: from and to must be non-empty", i+1)
		}
		if p.Meters < 0 || p.Seconds < 0 {
			return nil, fmt.Errorf("load static distances: pair #%d: negative metrics", i+1)
		}
		pairs = append(pairs, p)
		listed[pairKey(p.From, p.To)] = struct{}{}
	}

	if f.Symmetric {
		for _, p := range f.Pairs {
			if _, ok := listed[pairKey(p.To, p.From)]; ok {
				continue
			}
			pairs = append(pairs, StaticPair{From: p.To, To: p.From, Meters: p.Meters, Seconds: p.Seconds})
		}
	}

	return NewStaticDistanceProvider(pairs), nil
}

func (p *StaticDistanceProvider) Query(ctx context.Context, origin, destination string) (ports.DistanceSample, error) {
	p.mu.Lock()
	p.calls = append(p.calls, StaticCall{Origin: origin, Destination: destination})
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ports.DistanceSample{}, err
	}

	s, ok := p.m[pairKey(origin, destination)]
	if !ok {
		return ports.Unavailable(), nil
	}
	return s, nil
}

// Calls returns a copy of every query made so far, in order.
func (p *StaticDistanceProvider) Calls() []StaticCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]StaticCall, len(p.calls))
	copy(out, p.calls)
	return out
}

func pairKey(from, to string) string { return from + "|" + to }
