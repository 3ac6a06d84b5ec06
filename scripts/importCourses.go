package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
)

// Imports courses from Courses.csv. One row per content item:
// course_title, module_title, module_position, content_title, content_type, position, payload
// Courses and modules are created on first sight; slugs come from the titles.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("Courses.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	db := database.Database.Db
	courses := make(map[string]*courseModels.Course)
	modules := make(map[string]*courseModels.Module)
	imported := 0

	// Skip header row
	for i, record := range records[1:] {
		if len(record) < 7 {
			log.Printf("Skipping row %d: expected 7 columns, got %d", i+2, len(record))
			continue
		}

		courseTitle := strings.TrimSpace(record[0])
		moduleTitle := strings.TrimSpace(record[1])
		modulePosition, _ := strconv.Atoi(strings.TrimSpace(record[2]))
		contentTitle := strings.TrimSpace(record[3])
		contentType := strings.ToUpper(strings.TrimSpace(record[4]))
		position, _ := strconv.Atoi(strings.TrimSpace(record[5]))
		payload := strings.TrimSpace(record[6])

		course, ok := courses[courseTitle]
		if !ok {
			course = &courseModels.Course{
				Title:       courseTitle,
				IsPublished: true,
			}
			if err := db.Where("title = ? AND is_deleted = ?", courseTitle, false).FirstOrCreate(course).Error; err != nil {
				log.Fatalf("Failed to create course %q: %v", courseTitle, err)
			}
			courses[courseTitle] = course
		}

		moduleKey := courseTitle + "/" + moduleTitle
		module, ok := modules[moduleKey]
		if !ok {
			module = &courseModels.Module{
				CourseID: course.ID,
				Title:    moduleTitle,
				Position: modulePosition,
			}
			if err := db.Where("course_id = ? AND title = ?", course.ID, moduleTitle).FirstOrCreate(module).Error; err != nil {
				log.Fatalf("Failed to create module %q: %v", moduleTitle, err)
			}
			modules[moduleKey] = module
		}

		content := courseModels.Content{
			CourseID:    course.ID,
			ModuleID:    module.ID,
			Title:       contentTitle,
			ContentType: contentType,
			Position:    position,
			IsPublished: true,
		}
		switch contentType {
		case courseModels.ContentTypeVideo:
			content.VideoURL = payload
		case courseModels.ContentTypeScorm, courseModels.ContentTypeDocument:
			content.FilePath = payload
		default:
			content.TextContent = payload
		}

		if err := db.Create(&content).Error; err != nil {
			log.Printf("Failed to create content %q (row %d): %v", contentTitle, i+2, err)
			continue
		}
		imported++
	}

	log.Printf("Import finished: %d courses, %d modules, %d contents", len(courses), len(modules), imported)
}
