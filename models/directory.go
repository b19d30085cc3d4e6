package models

// Team etkinlik görünürlüğünü kapsayan grup.
type Team struct {
	ID   string `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

// Member user tipindeki davetlilerin başvurduğu kayıtlı kişi.
type Member struct {
	ID    string `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(150);not null" json:"name"`
	Email string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
}

func DefaultTeams() []Team {
	return []Team{
		{ID: "team1", Name: "Development Team"},
		{ID: "team2", Name: "Marketing Team"},
		{ID: "team3", Name: "Sales Team"},
		{ID: "team4", Name: "HR Team"},
	}
}

func DefaultMembers() []Member {
	return []Member{
		{ID: "user1", Name: "John Doe", Email: "john@example.com"},
		{ID: "user2", Name: "Jane Smith", Email: "jane@example.com"},
		{ID: "user3", Name: "Mike Johnson", Email: "mike@example.com"},
		{ID: "user4", Name: "Sarah Wilson", Email: "sarah@example.com"},
	}
}
