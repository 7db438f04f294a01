package store

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"
	"gorm.io/gorm"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
)

func strPtr(s string) *string { return &s }

// Seed populates the profile tables with the initial data set. It is a no-op
// when any project rows already exist, so restarting the service never
// duplicates data.
func Seed(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if count > 0 {
		logger.Infow("profile data already present, skipping seed", "projects", count)
		return nil
	}

	projects := []*model.Project{
		{
			Title:       "AI Resume Assistant",
			Description: "A retrieval-augmented question answering service over my professional profile. Questions are answered from indexed profile documents with graceful degradation to keyword matching when external services are unavailable.",
			RepoURL:     strPtr("https://github.com/Anurag02012004/ai-resume-project"),
			TechStack:   []string{"Go", "Gin", "Milvus", "PostgreSQL", "Redis", "OpenAI"},
		},
		{
			Title:       "Realtime Fleet Tracker",
			Description: "Ingestion pipeline and dashboard for live GPS telemetry from delivery vehicles. Handles bursty writes with a partitioned queue and serves map views with sub-second latency.",
			RepoURL:     strPtr("https://github.com/Anurag02012004/fleet-tracker"),
			TechStack:   []string{"Go", "Kafka", "PostgreSQL", "Redis", "WebSocket"},
		},
		{
			Title:       "Marketplace Price Watcher",
			Description: "Scheduled crawler that tracks product prices across marketplaces and notifies users of drops. Includes deduplication, per-site rate limiting and an alerting rules engine.",
			TechStack:   []string{"Python", "FastAPI", "Celery", "SQLite"},
		},
	}

	experiences := []*model.Experience{
		{
			Role:      "Backend Engineer",
			Company:   "Northwind Labs",
			Location:  "Bengaluru, India",
			StartDate: strPtr("2024-07"),
			Description: []string{
				"Built and operate Go microservices powering search and recommendations.",
				"Cut vector index sync time from hours to minutes by batching embedding calls.",
				"On-call owner for the retrieval stack, including Milvus and Redis.",
			},
		},
		{
			Role:      "Software Engineering Intern",
			Company:   "Crestline Systems",
			Location:  "Remote",
			StartDate: strPtr("2023-05"),
			EndDate:   strPtr("2023-08"),
			Description: []string{
				"Implemented REST endpoints and integration tests for a billing platform.",
				"Migrated legacy cron jobs to a queue-based worker pool.",
			},
		},
	}

	skills := []*model.Skill{
		{Name: "Go", Category: "Languages"},
		{Name: "Python", Category: "Languages"},
		{Name: "SQL", Category: "Languages"},
		{Name: "Gin", Category: "Backend"},
		{Name: "gRPC", Category: "Backend"},
		{Name: "PostgreSQL", Category: "Data"},
		{Name: "Redis", Category: "Data"},
		{Name: "Milvus", Category: "Data"},
		{Name: "Docker", Category: "Infrastructure"},
		{Name: "Kubernetes", Category: "Infrastructure"},
	}

	education := []*model.Education{
		{
			Institution: "National Institute of Technology",
			Degree:      "B.Tech in Computer Science and Engineering",
			Location:    "India",
			StartDate:   "2020",
			EndDate:     strPtr("2024"),
			Description: []string{
				"Coursework in distributed systems, databases and machine learning.",
			},
		},
	}

	certificates := []*model.Certificate{
		{
			Title:       "Certified Kubernetes Application Developer",
			Issuer:      "Cloud Native Computing Foundation",
			IssueDate:   "2024-03",
			Description: strPtr("CKAD certification covering workload design, observability and services."),
		},
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&projects).Error; err != nil {
			return fmt.Errorf("failed to seed projects: %w", err)
		}
		if err := tx.Create(&experiences).Error; err != nil {
			return fmt.Errorf("failed to seed experiences: %w", err)
		}
		if err := tx.Create(&skills).Error; err != nil {
			return fmt.Errorf("failed to seed skills: %w", err)
		}
		if err := tx.Create(&education).Error; err != nil {
			return fmt.Errorf("failed to seed education: %w", err)
		}
		if err := tx.Create(&certificates).Error; err != nil {
			return fmt.Errorf("failed to seed certificates: %w", err)
		}
		logger.Infow("seeded profile data",
			"projects", len(projects),
			"experiences", len(experiences),
			"skills", len(skills),
			"education", len(education),
			"certificates", len(certificates),
		)
		return nil
	})
}
