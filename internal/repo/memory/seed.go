package memory

import (
	"time"

	"github.com/gobishoftu/site/backend/internal/domain"
)

const demoImage = "https://media-cdn.tripadvisor.com/media/attractions-splice-spp-720x480/14/be/50/9e.jpg"

// createDemoPackages returns the two packages every demo store starts with:
// one active, one hidden. The first is a minute newer so list order is stable.
func createDemoPackages(now time.Time) []domain.Package {
	horaDate := time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)
	craterDate := time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC)

	return []domain.Package{
		{
			ID: "1",
			PackageDraft: domain.PackageDraft{
				Title:             "Lake Hora Easy Day Out",
				TitleAm:           "ሆራ ሐይቅ የቀን ሽርሽር",
				Description:       "Relax by the lake, eat good food, and take your time.",
				DescriptionAm:     "ሐይቅ ዳር ዘና ይበሉ፣ ምርጥ ምግብ ይመገቡ፣ ጊዜዎን ይውሰዱ።",
				FullDescription:   "This experience is perfect if you want a calm day near the lake. No rushing. Plenty of time to enjoy the view and good food.",
				FullDescriptionAm: "ይህ ፓኬጅ ከሐይቅ ዳር የተረጋጋ ቀን ለሚፈልጉ ተስማሚ ነው። መጣደፍ የለም። እይታውን እና ምግቡን ለመደሰት በቂ ጊዜ አለ።",
				Features:          []string{"Lakeside seating", "Local lunch included", "Free time for photos"},
				FeaturesAm:        []string{"ሐይቅ ዳር መቀመጫ", "ምሳ ተካትቷል", "ለፎቶ የሚሆን በቂ ጊዜ"},
				Image:             demoImage,
				Duration:          "1 Day",
				DurationAm:        "1 ቀን",
				Date:              &horaDate,
				Price:             "1,500 ETB",
				StartTime:         "09:00",
				EndTime:           "17:00",
				IsActive:          true,
			},
			CreatedAt: now,
		},
		{
			ID: "2",
			PackageDraft: domain.PackageDraft{
				Title:             "Crater Hike Adventure",
				TitleAm:           "የእግር ጉዞ ወደ ክሬተር",
				Description:       "Explore the volcanic history of Bishoftu with a guided hike.",
				DescriptionAm:     "የቢሾፍቱን ታሪክ በእግር ጉዞ ያስሱ።",
				FullDescription:   "A moderate hike around the rim of the crater lakes. Stunning views and fresh air guaranteed.",
				FullDescriptionAm: "በክሬተር ሐይቆች ዙሪያ የሚደረግ የእግር ጉዞ። አስደናቂ እይታ እና ንጹህ አየር።",
				Features:          []string{"Guided hike", "Water snacks provided", "Binoculars for bird watching"},
				FeaturesAm:        []string{"አስጎብኚ", "ውሃ እና መክሰስ", "ወፍ ለመመልከት", "ካሜራ"},
				Image:             demoImage,
				Duration:          "Half Day",
				DurationAm:        "ግማሽ ቀን",
				Date:              &craterDate,
				Price:             "800 ETB",
				StartTime:         "08:00",
				EndTime:           "12:00",
				IsActive:          false,
			},
			CreatedAt: now.Add(-time.Minute),
		},
	}
}
