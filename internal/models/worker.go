package models

import (
	"time"

	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Category string

const (
	CategoryPlumber     Category = "Plumber"
	CategoryElectrician Category = "Electrician"
	CategoryCleaner     Category = "Cleaner"
	CategoryCarpenter   Category = "Carpenter"
	CategoryPainter     Category = "Painter"
	CategoryOther       Category = "Other"
	CategoryNone        Category = "None"
)

var categories = []Category{
	CategoryPlumber,
	CategoryElectrician,
	CategoryCleaner,
	CategoryCarpenter,
	CategoryPainter,
	CategoryOther,
	CategoryNone,
}

// Categories returns the selectable worker categories (everything except None).
func Categories() []Category {
	out := make([]Category, 0, len(categories)-1)
	for _, c := range categories {
		if c != CategoryNone {
			out = append(out, c)
		}
	}
	return out
}

func (c Category) Valid() bool {
	for _, v := range categories {
		if v == c {
			return true
		}
	}
	return false
}

// WorkerVerification is embedded into workers; it carries the document URLs
// and the admin decision flags.
type WorkerVerification struct {
	PoliceDocURL        *string `gorm:"column:police_doc_url;size:500" json:"policeDocUrl"`
	AadharDocURL        *string `gorm:"column:aadhar_doc_url;size:500" json:"aadharDocUrl"`
	IsPoliceDocVerified bool    `gorm:"column:is_police_doc_verified;not null;default:false" json:"isPoliceDocVerified"`
	IsAadharDocVerified bool    `gorm:"column:is_aadhar_doc_verified;not null;default:false" json:"isAadharDocVerified"`
}

type Worker struct {
	ID                uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	Category          Category           `gorm:"size:30;not null;default:'None';index" json:"category"`
	Skills            pq.StringArray     `gorm:"type:text[]" json:"skills"`
	Experience        int                `gorm:"not null;default:0;check:experience >= 0" json:"experience"`
	HourlyRate        *float64           `gorm:"check:hourly_rate >= 0" json:"hourlyRate"`
	Availability      bool               `gorm:"not null;default:true" json:"availability"`
	Bio               string             `gorm:"type:text" json:"bio"`
	LanguagesSpoken   pq.StringArray     `gorm:"type:text[]" json:"languagesSpoken"`
	Rating            float64            `gorm:"not null;default:0;check:rating >= 0 AND rating <= 5" json:"rating"`
	TotalJobs         int                `gorm:"not null;default:0" json:"totalJobs"`
	Verification      WorkerVerification `gorm:"embedded" json:"verification"`
	VerificationStage verification.Stage `gorm:"column:verification_stage;size:32;not null;default:'TNC_PENDING';index" json:"verificationStage"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	User              *User              `gorm:"foreignKey:UserID" json:"-"`
}

// Worker column names used by partial updates.
const (
	ColCategory            = "category"
	ColSkills              = "skills"
	ColExperience          = "experience"
	ColHourlyRate          = "hourly_rate"
	ColBio                 = "bio"
	ColLanguagesSpoken     = "languages_spoken"
	ColVerificationStage   = "verification_stage"
	ColPoliceDocURL        = "police_doc_url"
	ColAadharDocURL        = "aadhar_doc_url"
	ColIsPoliceDocVerified = "is_police_doc_verified"
	ColIsAadharDocVerified = "is_aadhar_doc_verified"
)
