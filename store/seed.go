package store

import "civicreport-be/models"

// SeedIssues returns the demo dataset written on first load of an empty
// installation. Ids are stable so the portal's deep links keep working
// across reseeds.
func SeedIssues() []models.Issue {
	return []models.Issue{
		{
			ID:           "1",
			Title:        "Pothole on Moi Avenue",
			Description:  "Large pothole causing traffic issues and vehicle damage",
			Category:     models.Roads,
			Status:       models.Pending,
			Location:     "Moi Avenue, Nairobi",
			ReportedBy:   "John Kamau",
			ReportedDate: "2025-01-10",
			AssignedTo:   models.Unassigned,
			Notes:        []models.IssueNote{},
		},
		{
			ID:           "2",
			Title:        "Water supply disruption",
			Description:  "No water supply for the past 3 days",
			Category:     models.Water,
			Status:       models.InProgress,
			Location:     "Kilimani Estate",
			ReportedBy:   "Mary Wanjiru",
			ReportedDate: "2025-01-08",
			AssignedTo:   models.WaterServices,
			Notes: []models.IssueNote{
				{
					ID:        "n1",
					Content:   "Team dispatched to investigate",
					CreatedAt: "2025-01-09T10:30:00Z",
					CreatedBy: "Admin",
				},
			},
		},
		{
			ID:           "3",
			Title:        "Street lights not working",
			Description:  "All street lights on Kenyatta Road are off",
			Category:     models.Electricity,
			Status:       models.Pending,
			Location:     "Kenyatta Road",
			ReportedBy:   "Ahmed Hassan",
			ReportedDate: "2025-01-09",
			AssignedTo:   models.Unassigned,
			Notes:        []models.IssueNote{},
		},
		{
			ID:           "4",
			Title:        "Waste collection delayed",
			Description:  "Garbage has not been collected for two weeks",
			Category:     models.Waste,
			Status:       models.Resolved,
			Location:     "Westlands Area",
			ReportedBy:   "Sarah Njeri",
			ReportedDate: "2025-01-05",
			AssignedTo:   models.WasteManagement,
			Notes:        []models.IssueNote{},
		},
	}
}
