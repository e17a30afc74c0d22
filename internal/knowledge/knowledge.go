// Package knowledge holds the static project documents that back the
// assistant and the investor document viewer.
package knowledge

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed docs/*.md
var docsFS embed.FS

var ErrDocumentNotFound = errors.New("document not found")

// Section groups documents inside the assistant's system instruction
type Section string

const (
	SectionProject     Section = "PROJECT DOCUMENTATION (RESTRICTED)"
	SectionOperational Section = "OPERATIONAL SUPPORT & CYBERSECURITY"
	SectionLegal       Section = "LEGAL & HR"
)

// Sections lists the sections in prompt order
var Sections = []Section{SectionProject, SectionOperational, SectionLegal}

// Document is one knowledge base entry. Confidential documents are only
// listed to roles allowed to read confidential material.
type Document struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Section      Section `json:"section"`
	Confidential bool    `json:"confidential"`
	Body         string  `json:"body,omitempty"`
}

var catalog = []Document{
	{ID: "proposal", Title: "Project Proposal", Section: SectionProject, Confidential: true},
	{ID: "technical", Title: "Technical Appendix", Section: SectionProject, Confidential: true},
	{ID: "cybersecurity_guide", Title: "Cybersecurity Support Guide", Section: SectionOperational},
	{ID: "troubleshooting_cheat_sheet", Title: "IT & Network Troubleshooting Cheat Sheet", Section: SectionOperational},
	{ID: "devops_guide", Title: "DevOps Linux Quick Reference", Section: SectionOperational},
	{ID: "tech_safety_checklist", Title: "Small Business Tech Safety Checklist", Section: SectionOperational},
	{ID: "help_desk_guide", Title: "Level 1 Help Desk Setup Guide", Section: SectionOperational},
	{ID: "website_audit_guide", Title: "Website Audit Guide", Section: SectionOperational},
	{ID: "freelancer_agreement", Title: "Freelance Services Agreement Template", Section: SectionLegal},
}

// Base is the loaded knowledge base
type Base struct {
	docs []Document
}

// Load reads every catalogued document from the embedded files
func Load() (*Base, error) {
	b := &Base{docs: make([]Document, 0, len(catalog))}
	for _, d := range catalog {
		body, err := docsFS.ReadFile("docs/" + d.ID + ".md")
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", d.ID, err)
		}
		d.Body = string(body)
		b.docs = append(b.docs, d)
	}
	return b, nil
}

// MustLoad is Load for process start-up
func MustLoad() *Base {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// List returns document metadata without bodies.
// Confidential documents are included only when withConfidential is set.
func (b *Base) List(withConfidential bool) []Document {
	out := make([]Document, 0, len(b.docs))
	for _, d := range b.docs {
		if d.Confidential && !withConfidential {
			continue
		}
		d.Body = ""
		out = append(out, d)
	}
	return out
}

// Get returns one document with its body
func (b *Base) Get(id string) (Document, error) {
	for _, d := range b.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
}

// SectionText concatenates the bodies of one section, separated by blank lines
func (b *Base) SectionText(s Section) string {
	var parts []string
	for _, d := range b.docs {
		if d.Section == s {
			parts = append(parts, strings.TrimSpace(d.Body))
		}
	}
	return strings.Join(parts, "\n\n")
}
