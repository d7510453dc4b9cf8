package services

import (
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/samber/lo"
	"math"
	"strings"
	"unicode"
)

// knownSkills is matched against listing text when the job board sends no skill list.
var knownSkills = []string{
	"Go", "Golang", "Python", "Java", "Kotlin", "Scala", "Rust", "C++", "C#", ".NET",
	"JavaScript", "TypeScript", "React", "Angular", "Vue", "Node", "Node.js", "Next.js",
	"Ruby", "Rails", "PHP", "Laravel", "Swift", "Django", "Flask", "Spring",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Kafka", "RabbitMQ", "Elasticsearch",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "Ansible", "Linux",
	"GraphQL", "gRPC", "REST", "Microservices", "CI/CD", "Git",
	"Machine Learning", "TensorFlow", "PyTorch", "Spark", "Airflow", "Snowflake",
}

// ExtractSkills lists the known skills mentioned in text, in vocabulary order.
func ExtractSkills(text string) []string {
	padded := " " + strings.Join(skillTokens(text), " ") + " "
	return lo.Filter(knownSkills, func(skill string, _ int) bool {
		return strings.Contains(padded, " "+strings.Join(skillTokens(skill), " ")+" ")
	})
}

func skillTokens(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("+#./", r)
	})
	return lo.FilterMap(words, func(word string, _ int) (string, bool) {
		word = strings.TrimRight(word, "./")
		return word, word != ""
	})
}

// MatchSkills compares skills case-insensitively, keeping the job's spelling and order.
func MatchSkills(resumeSkills, jobSkills []string) models.SkillMatch {
	have := lo.SliceToMap(resumeSkills, func(skill string) (string, struct{}) {
		return strings.ToLower(strings.TrimSpace(skill)), struct{}{}
	})

	required := lo.UniqBy(lo.Filter(jobSkills, func(skill string, _ int) bool {
		return strings.TrimSpace(skill) != ""
	}), func(skill string) string {
		return strings.ToLower(strings.TrimSpace(skill))
	})

	match := models.SkillMatch{Matched: []string{}, Missing: []string{}}
	for _, skill := range required {
		if _, ok := have[strings.ToLower(strings.TrimSpace(skill))]; ok {
			match.Matched = append(match.Matched, skill)
		} else {
			match.Missing = append(match.Missing, skill)
		}
	}

	if len(required) > 0 {
		match.Score = int(math.Round(float64(len(match.Matched)) / float64(len(required)) * 100))
	}
	return match
}

// AnnotateSkills returns a copy of listings with a skill match attached to
// every listing that names required skills. Cached listings are never modified.
func AnnotateSkills(listings []models.JobListing, resumeSkills []string) []models.JobListing {
	if len(resumeSkills) == 0 {
		return listings
	}
	return lo.Map(listings, func(listing models.JobListing, _ int) models.JobListing {
		if len(listing.SkillsRequired) > 0 {
			match := MatchSkills(resumeSkills, listing.SkillsRequired)
			listing.SkillMatch = &match
		}
		return listing
	})
}
