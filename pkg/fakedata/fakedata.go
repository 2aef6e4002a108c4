// Package fakedata produces realistic sample calendar requests for
// development and for the /v1/sample-data endpoint.
package fakedata

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"mastermind/pkg/models"
)

var sampleCompany = models.CompanyInfo{
	Name:           "Slideforge",
	Website:        "slideforge.ai",
	Description:    "AI-powered presentation tool",
	TargetAudience: []string{"operators", "consultants", "founders"},
	KeyFeatures:    []string{"AI-powered", "Templates", "API"},
	Domain:         "presentation tools",
}

var sampleSubreddits = []string{"PowerPoint", "startups", "productivity", "Entrepreneur"}

var seedKeywords = []string{
	"best ai presentation maker",
	"powerpoint alternative",
	"pitch deck generator",
	"slide design tips",
}

var personaRoles = []string{
	"Head of Operations",
	"Freelance Consultant",
	"Startup Founder",
	"Product Manager",
}

var personaVoices = []string{
	"Precise, organized",
	"Casual, direct",
	"Curious, analytical",
	"Warm, encouraging",
}

var personaInterests = [][]string{
	{"operations", "process design"},
	{"consulting", "client work"},
	{"startups", "growth"},
	{"product", "design tools"},
}

// SampleRequest builds a deterministic sample calendar request. The same
// seed always produces the same personas and keywords.
func SampleRequest(seed int64) models.CalendarRequest {
	faker := gofakeit.New(seed)

	personas := []models.Persona{{
		Name:         "Riley Hart",
		Username:     "riley_ops",
		Role:         "Head of Operations",
		Voice:        "Precise, organized",
		Interests:    []string{"operations", "process design"},
		PostingStyle: "Thoughtful, shares experiences",
	}}
	for i := 1; i < len(personaRoles); i++ {
		name := faker.Name()
		personas = append(personas, models.Persona{
			Name:         name,
			Username:     username(faker, name),
			Role:         personaRoles[i],
			Voice:        personaVoices[i],
			Interests:    personaInterests[i],
			PostingStyle: fmt.Sprintf("%s, %s", faker.AdjectiveDescriptive(), "asks questions"),
		})
	}

	keywords := make([]models.Keyword, len(seedKeywords))
	for i, kw := range seedKeywords {
		keywords[i] = models.Keyword{ID: fmt.Sprintf("K%d", i+1), Keyword: kw}
	}

	return models.CalendarRequest{
		CompanyInfo:  sampleCompany,
		Personas:     personas,
		Subreddits:   sampleSubreddits,
		Keywords:     keywords,
		PostsPerWeek: 3,
		Seed:         &seed,
	}
}

func username(faker *gofakeit.Faker, name string) string {
	first := strings.ToLower(strings.Fields(name)[0])
	return fmt.Sprintf("%s_%s", first, faker.NounAbstract())
}
