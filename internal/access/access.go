// Package access decides which authenticated identities get back-office
// capabilities. The admin list comes from configuration, never from code.
package access

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy is an immutable admin allow-list keyed by email.
type Policy struct {
	admins map[string]struct{}
}

type policyFile struct {
	Admins []string `yaml:"admins"`
}

// NewPolicy builds a policy from admin emails. Matching ignores case and
// surrounding whitespace.
func NewPolicy(emails ...string) *Policy {
	p := &Policy{admins: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if key := normalize(e); key != "" {
			p.admins[key] = struct{}{}
		}
	}
	return p
}

// Load merges the env-provided emails with the YAML file at path, if any.
func Load(path string, emails []string) (*Policy, error) {
	all := append([]string{}, emails...)
	if path != "" {
		fromFile, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, fromFile...)
	}
	return NewPolicy(all...), nil
}

// LoadFile reads `admins: [...]` from a YAML document.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read access policy: %w", err)
	}
	var doc policyFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse access policy: %w", err)
	}
	return doc.Admins, nil
}

// IsAdmin reports whether email belongs to an administrator.
func (p *Policy) IsAdmin(email string) bool {
	if p == nil {
		return false
	}
	_, ok := p.admins[normalize(email)]
	return ok
}

// Admins returns the sorted admin emails.
func (p *Policy) Admins() []string {
	out := make([]string, 0, len(p.admins))
	for e := range p.admins {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
