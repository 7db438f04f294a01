package biz

import (
	"fmt"
	"strings"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
)

// FormatProfile renders every profile entity into a retrieval document using
// a fixed template per entity type. Output is deterministic: the same
// snapshot always yields the same documents in the same order, and no entity
// is ever dropped.
func FormatProfile(snapshot *model.ProfileSnapshot) []*model.Document {
	if snapshot == nil {
		return nil
	}

	var docs []*model.Document

	for _, p := range snapshot.Projects {
		docs = append(docs, formatProject(p))
	}
	for _, e := range snapshot.Experiences {
		docs = append(docs, formatExperience(e))
	}
	docs = append(docs, formatSkills(snapshot.Skills)...)
	for _, e := range snapshot.Education {
		docs = append(docs, formatEducation(e))
	}
	for _, c := range snapshot.Certificates {
		docs = append(docs, formatCertificate(c))
	}

	return docs
}

func formatProject(p *model.Project) *model.Document {
	repo := "Not specified"
	if p.RepoURL != nil && *p.RepoURL != "" {
		repo = *p.RepoURL
	}

	content := fmt.Sprintf("Project: %s\nDescription: %s\nTechnologies: %s\nRepository: %s",
		p.Title, p.Description, strings.Join(p.TechStack, ", "), repo)

	return &model.Document{
		Type:     model.DocTypeProject,
		SourceID: fmt.Sprintf("%d", p.ID),
		Title:    p.Title,
		Content:  content,
	}
}

func formatExperience(e *model.Experience) *model.Document {
	start := "Not specified"
	if e.StartDate != nil && *e.StartDate != "" {
		start = *e.StartDate
	}
	end := "Present"
	if e.EndDate != nil && *e.EndDate != "" {
		end = *e.EndDate
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Position: %s at %s\n", e.Role, e.Company)
	if e.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", e.Location)
	}
	fmt.Fprintf(&sb, "Duration: %s to %s\n", start, end)
	fmt.Fprintf(&sb, "Responsibilities: %s", strings.Join(e.Description, " "))

	return &model.Document{
		Type:     model.DocTypeExperience,
		SourceID: fmt.Sprintf("%d", e.ID),
		Title:    fmt.Sprintf("%s at %s", e.Role, e.Company),
		Content:  sb.String(),
	}
}

// formatSkills produces one document per skill category, grouping categories
// in the order they first appear in the snapshot.
func formatSkills(skills []*model.Skill) []*model.Document {
	var order []string
	grouped := make(map[string][]string)

	for _, s := range skills {
		if _, seen := grouped[s.Category]; !seen {
			order = append(order, s.Category)
		}
		grouped[s.Category] = append(grouped[s.Category], s.Name)
	}

	docs := make([]*model.Document, 0, len(order))
	for _, category := range order {
		content := fmt.Sprintf("Skill Category: %s\nSkills: %s",
			category, strings.Join(grouped[category], ", "))

		docs = append(docs, &model.Document{
			Type:     model.DocTypeSkills,
			SourceID: "skills_" + slugify(category),
			Title:    category + " Skills",
			Content:  content,
		})
	}
	return docs
}

func formatEducation(e *model.Education) *model.Document {
	end := "Present"
	if e.EndDate != nil && *e.EndDate != "" {
		end = *e.EndDate
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Education: %s at %s\n", e.Degree, e.Institution)
	if e.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", e.Location)
	}
	fmt.Fprintf(&sb, "Duration: %s to %s", e.StartDate, end)
	if len(e.Description) > 0 {
		fmt.Fprintf(&sb, "\nDetails: %s", strings.Join(e.Description, " "))
	}

	return &model.Document{
		Type:     model.DocTypeEducation,
		SourceID: fmt.Sprintf("%d", e.ID),
		Title:    e.Degree,
		Content:  sb.String(),
	}
}

func formatCertificate(c *model.Certificate) *model.Document {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Certificate: %s\nIssuer: %s\nIssued: %s", c.Title, c.Issuer, c.IssueDate)
	if c.Description != nil && *c.Description != "" {
		fmt.Fprintf(&sb, "\nDetails: %s", *c.Description)
	}

	return &model.Document{
		Type:     model.DocTypeCertificate,
		SourceID: fmt.Sprintf("%d", c.ID),
		Title:    c.Title,
		Content:  sb.String(),
	}
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
