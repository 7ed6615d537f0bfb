package main

import (
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gdmcare/portal-api/internal/config"
	"github.com/gdmcare/portal-api/internal/db"
	domain "github.com/gdmcare/portal-api/internal/domain/glucose"
	"github.com/gdmcare/portal-api/internal/models"
)

// Development fixtures: a small clinic with doctors, patients,
// weekly availability and a week of glucose history per patient.
// Every account gets the same password so the API is easy to poke at.
const seedPassword = "portal123"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg := config.Load()
	database := db.NewDB(cfg)

	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	doctors, err := seedDoctors(database, string(hash), 4)
	if err != nil {
		log.Fatalf("seed doctors: %v", err)
	}

	patients, err := seedPatients(database, string(hash), 12)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	if err := seedAssignments(database, doctors, patients); err != nil {
		log.Fatalf("seed assignments: %v", err)
	}

	if err := seedAvailability(database, doctors); err != nil {
		log.Fatalf("seed availability: %v", err)
	}

	if err := seedGlucose(database, patients); err != nil {
		log.Fatalf("seed glucose: %v", err)
	}

	log.Println("seed complete")
}

func seedDoctors(database *gorm.DB, hash string, count int) ([]models.User, error) {
	log.Printf("seeding %d doctors", count)

	specialties := []string{
		"Obstetrics",
		"Endocrinology",
		"Maternal-Fetal Medicine",
		"Dietetics",
	}

	doctors := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		doc := models.User{
			Name:             "Dr. " + gofakeit.Name(),
			Email:            gofakeit.Email(),
			PasswordHash:     hash,
			Phone:            gofakeit.Phone(),
			Role:             models.RoleDoctor,
			Specialty:        specialties[i%len(specialties)],
			VisitDurationMin: 50,
			BufferMin:        10,
		}
		if err := database.Create(&doc).Error; err != nil {
			return nil, err
		}
		doctors = append(doctors, doc)
	}
	return doctors, nil
}

func seedPatients(database *gorm.DB, hash string, count int) ([]models.User, error) {
	log.Printf("seeding %d patients", count)

	patients := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		dob := gofakeit.DateRange(
			time.Now().AddDate(-42, 0, 0),
			time.Now().AddDate(-22, 0, 0),
		)
		due := time.Now().AddDate(0, gofakeit.Number(1, 6), gofakeit.Number(0, 27))

		pat := models.User{
			Name:         gofakeit.Name(),
			Email:        gofakeit.Email(),
			PasswordHash: hash,
			Phone:        gofakeit.Phone(),
			Role:         models.RolePatient,
			DateOfBirth:  &dob,
			DueDate:      &due,
		}
		if err := database.Create(&pat).Error; err != nil {
			return nil, err
		}
		patients = append(patients, pat)
	}
	return patients, nil
}

func seedAssignments(database *gorm.DB, doctors, patients []models.User) error {
	log.Println("seeding assignments")

	// Spread patients round-robin across the doctors.
	for i, pat := range patients {
		doc := doctors[i%len(doctors)]
		assignment := models.PatientAssignment{
			DoctorID:  doc.ID,
			PatientID: pat.ID,
		}
		if err := database.Create(&assignment).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAvailability(database *gorm.DB, doctors []models.User) error {
	log.Println("seeding weekly availability")

	// Monday through Friday, standard clinic hours.
	for _, doc := range doctors {
		for weekday := 1; weekday <= 5; weekday++ {
			rule := models.RecurringAvailability{
				DoctorID:    doc.ID,
				Weekday:     weekday,
				StartTime:   "09:00",
				EndTime:     "17:00",
				IsAvailable: true,
			}
			if err := database.Create(&rule).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedGlucose(database *gorm.DB, patients []models.User) error {
	log.Println("seeding glucose readings")

	types := []string{
		domain.TypeFasting,
		domain.TypeOneHour,
		domain.TypeTwoHour,
		domain.TypeRandom,
	}

	for _, pat := range patients {
		// One week of history, a few readings per day.
		for day := 7; day >= 1; day-- {
			for _, rt := range types[:gofakeit.Number(2, 4)] {
				value := float64(gofakeit.Number(70, 190))
				readingTime := time.Now().
					AddDate(0, 0, -day).
					Add(time.Duration(gofakeit.Number(6, 21)) * time.Hour)

				reading := models.GlucoseReading{
					PatientID:   pat.ID,
					ReadingType: rt,
					ValueMgDl:   value,
					Status:      domain.Classify(rt, value),
					ReadingTime: readingTime,
				}
				if err := database.Create(&reading).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
