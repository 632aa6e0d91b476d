package utils

import (
	"log"
	"time"

	"lms-educate/config"
	courseModels "lms-educate/models/course"

	"github.com/go-resty/resty/v2"
)

// NotifyCoursePublished posts a course-published event to the configured
// webhook. Best-effort: delivery failures are logged, never surfaced to the
// publishing request.
func NotifyCoursePublished(course *courseModels.Course) {
	url := config.AppConfig.PublishWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":           "course.published",
			"course_id":       course.ID,
			"organization_id": course.OrganizationID,
			"title":           course.Title,
			"published_at":    time.Now().Format(time.RFC3339),
		}).
		Post(url)
	if err != nil {
		log.Printf("Webhook delivery failed: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("Webhook returned status %d", resp.StatusCode())
	}
}
