package main

import (
	"fmt"
	"log"

	"lms-educate/config"
	"lms-educate/database"
	"lms-educate/membership"
	"lms-educate/middleware"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeds a demo organization with one subject per role and a published course,
// then prints a token for each subject. Run with:
//
//	go run ./scripts
func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	users := []models.User{
		{Name: "Demo Owner", Email: "owner@demo.test", Role: models.RoleOwner, IsActive: true},
		{Name: "Demo Instructor", Email: "instructor@demo.test", Role: models.RoleInstructor, IsActive: true},
		{Name: "Demo Learner", Email: "learner@demo.test", Role: models.RoleLearner, IsActive: true},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
				return err
			}
		}

		org := models.Organization{
			PublicID: uuid.NewString(),
			Name:     "Demo Academy",
			PlanTier: "TEAM",
			Status:   "ACTIVE",
		}
		if err := tx.Where("name = ?", org.Name).FirstOrCreate(&org).Error; err != nil {
			return err
		}

		if _, err := membership.BootstrapOwner(tx, org.ID, users[0].ID); err != nil {
			return err
		}
		for _, u := range users[1:] {
			m := models.Membership{UserID: u.ID, OrganizationID: org.ID, Role: u.Role}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}

		course := courseModels.Course{
			OrganizationID: org.ID,
			OwnerID:        &users[1].ID,
			Title:          "Getting Started",
			Description:    "A short demo course with one section.",
			IsPublished:    true,
		}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}

		subCourse := courseModels.SubCourse{
			CourseID:   course.ID,
			Title:      "Week 1",
			OrderIndex: 0,
		}
		return tx.Create(&subCourse).Error
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	for _, u := range users {
		token, err := middleware.GenerateJWT(u.ID, u.Name, u.Role, u.Email, u.IsActive)
		if err != nil {
			log.Fatalf("Token generation failed: %v", err)
		}
		fmt.Printf("%s (%s): Bearer %s\n", u.Name, u.Role, token)
	}
}
