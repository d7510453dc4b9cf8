package services

import (
	"fmt"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"strings"
)

const resumeExcerptLimit = 3000

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func preferencesSummary(prefs models.JobPreferences) string {
	var parts []string
	if len(prefs.DesiredRoles) > 0 {
		parts = append(parts, "Desired roles: "+strings.Join(prefs.DesiredRoles, ", "))
	}
	if len(prefs.Locations) > 0 {
		parts = append(parts, "Locations: "+strings.Join(prefs.Locations, ", "))
	}
	if prefs.RemoteOnly {
		parts = append(parts, "Remote only")
	}
	if prefs.SalaryMin != nil {
		parts = append(parts, fmt.Sprintf("Minimum salary: %.0f", *prefs.SalaryMin))
	}
	if len(prefs.JobTypes) > 0 {
		parts = append(parts, "Job types: "+strings.Join(prefs.JobTypes, ", "))
	}
	if len(prefs.Industries) > 0 {
		parts = append(parts, "Industries: "+strings.Join(prefs.Industries, ", "))
	}
	if len(parts) == 0 {
		return "No stated preferences."
	}
	return strings.Join(parts, "\n")
}

// resumeText renders structured résumé data as plain text for prompts.
func resumeText(data models.ResumeData) string {
	var sb strings.Builder

	if data.Summary != "" {
		sb.WriteString("SUMMARY\n" + data.Summary + "\n\n")
	}
	if len(data.ExtractedSkills) > 0 {
		sb.WriteString("SKILLS\n" + strings.Join(data.ExtractedSkills, ", ") + "\n\n")
	}
	if len(data.WorkExperience) > 0 {
		sb.WriteString("EXPERIENCE\n")
		for _, w := range data.WorkExperience {
			sb.WriteString(fmt.Sprintf("- %s at %s (%s - %s)\n", w.Title, w.Company, w.StartDate, orPresent(w.EndDate)))
			if w.Description != "" {
				sb.WriteString("  " + w.Description + "\n")
			}
			for _, h := range w.Highlights {
				sb.WriteString("  * " + h + "\n")
			}
		}
		sb.WriteString("\n")
	}
	if len(data.Education) > 0 {
		sb.WriteString("EDUCATION\n")
		for _, e := range data.Education {
			sb.WriteString(fmt.Sprintf("- %s %s, %s %s\n", e.Degree, e.Field, e.Institution, e.Year))
		}
		sb.WriteString("\n")
	}
	if len(data.Certifications) > 0 {
		sb.WriteString("CERTIFICATIONS\n" + strings.Join(data.Certifications, ", ") + "\n")
	}

	return strings.TrimSpace(sb.String())
}

func orPresent(date string) string {
	if date == "" {
		return "Present"
	}
	return date
}

const queryGenerationSystem = `You are a recruiting search expert. Reply with a JSON array of exactly 3 distinct job search query strings and nothing else.`

func queryGenerationPrompt(resume string, prefs models.JobPreferences) string {
	return fmt.Sprintf(`Create 3 job board search queries for this candidate:
1. a direct match for their current or target role
2. a match based on their strongest skills
3. an industry or title variation they may not have considered

Keep each query short (2-5 words), suitable for a keyword search.

CANDIDATE PREFERENCES:
%s

RESUME:
%s`, preferencesSummary(prefs), truncate(resume, resumeExcerptLimit))
}

const rankingSystem = `You are a hiring expert scoring job fit. Reply with a single JSON object keyed by job id, each value {"score": 0-100 integer, "reason": one short sentence}.`

func rankingPrompt(resume string, jobs []models.JobListing) string {
	var sb strings.Builder
	for _, job := range jobs {
		sb.WriteString(fmt.Sprintf("ID: %s\nTitle: %s\nCompany: %s\nLocation: %s\nDescription: %s\n\n",
			job.ID, job.Title, job.Company, job.Location, truncate(job.Description, 400)))
	}

	return fmt.Sprintf(`Score how well the candidate fits each job. Consider skills, seniority and domain.

RESUME EXCERPT:
%s

JOBS:
%s`, truncate(resume, 1500), sb.String())
}

const atsSystem = `You are an Applicant Tracking System. Reply with a single JSON object and nothing else.`

func atsPrompt(document, jobDescription string) string {
	return fmt.Sprintf(`Evaluate the document against the job description.

Score each category from 0 to 100:
- keywords (weight 40%%)
- skills (weight 30%%)
- experience (weight 20%%)
- education (weight 10%%)
Compute ats_score as the weighted composite. Penalize heavily when the seniority the job requires differs from the seniority the document evidences.

Also produce an improvement plan with 2-3 certificates (name, description, priority High, Medium or Low). When the candidate is under-qualified, add 2-3 stepping stone roles (title, reason).

JSON shape:
{"ats_score": 0, "breakdown": {"keywords": 0, "skills": 0, "experience": 0, "education": 0},
 "matched_keywords": [], "missing_keywords": [],
 "improvement_plan": {"certificates": [{"name": "", "description": "", "priority": "High"}],
 "stepping_stone_roles": [{"title": "", "reason": ""}]}}

DOCUMENT:
%s

JOB DESCRIPTION:
%s`, document, jobDescription)
}

const documentSystem = `You are an expert career writer. Reply with the document text only, no commentary and no markdown code fences.`

func resumeDocumentPrompt(resume, jobTitle, jobDescription string) string {
	return fmt.Sprintf(`Tailor this resume for the %s position.

Structure it with these sections: Professional Summary, Skills, Experience, Education, Certifications.
Reuse the candidate's real experience only. Mirror the job's terminology where it is truthful. Quantify achievements when the source allows it.

CANDIDATE RESUME:
%s

JOB DESCRIPTION:
%s`, orDefault(jobTitle, "target"), resume, jobDescription)
}

func coverLetterPrompt(resume, jobTitle, jobDescription string) string {
	return fmt.Sprintf(`Write a cover letter for the %s position.

Write 3-4 paragraphs: an opening that names the role, one or two paragraphs connecting concrete experience to the job's needs, and a short closing with a call to action.
Do not invent experience.

CANDIDATE RESUME:
%s

JOB DESCRIPTION:
%s`, orDefault(jobTitle, "advertised"), resume, jobDescription)
}

func focusKeywordsBlock(keywords []string) string {
	return fmt.Sprintf(`

CRITICAL KEYWORDS:
Naturally incorporate every one of these keywords: %s.
The document is rescored by an ATS afterwards and must reach at least 92%%. Do not keyword-stuff; each keyword should appear in a sentence that makes sense.`, strings.Join(keywords, ", "))
}

const resumeParseSystem = `You extract structured data from resumes. Reply with a single JSON object and nothing else.`

func resumeParsePrompt(text string) string {
	return fmt.Sprintf(`Extract the resume below into JSON with this shape:
{"summary": "", "extracted_skills": [], "work_experience": [{"title": "", "company": "", "start_date": "", "end_date": "", "description": "", "highlights": []}],
 "education": [{"degree": "", "institution": "", "field": "", "year": ""}], "certifications": []}

RESUME:
%s`, text)
}

const analysisSystem = `You are a career coach assessing job market readiness. Reply with a single JSON object and nothing else.`

func analysisPrompt(resume string, prefs models.JobPreferences) string {
	return fmt.Sprintf(`Assess the candidate's readiness for their target roles.

JSON shape:
{"readiness_score": 0-100, "recommended_roles": [], "skill_gaps": [{"skill": "", "importance": "", "suggestion": ""}], "market_insights": ""}

PREFERENCES:
%s

RESUME:
%s`, preferencesSummary(prefs), truncate(resume, resumeExcerptLimit))
}

const researchSystem = `You are a company research analyst. Answer in concise markdown with headings.`

func companyResearchPrompt(company, details string) string {
	prompt := fmt.Sprintf(`Research %s for a job seeker preparing an application or interview. Cover: overview, products, culture, recent news, interview process and tips.`, company)
	if strings.TrimSpace(details) != "" {
		prompt += "\n\nAdditional context: " + details
	}
	return prompt
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
