package database

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/procms-api/internal/logging"
	"github.com/yukikurage/procms-api/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var seedYAML []byte

type seedDocument struct {
	Clients       []seedClient       `yaml:"clients"`
	Employees     []seedEmployee     `yaml:"employees"`
	Projects      []seedProject      `yaml:"projects"`
	Comments      []seedComment      `yaml:"comments"`
	Subscriptions []seedSubscription `yaml:"subscriptions"`
	Reports       []seedReport       `yaml:"reports"`
}

type seedClient struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Company   string `yaml:"company"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Status    string `yaml:"status"`
	Industry  string `yaml:"industry"`
	Address   string `yaml:"address"`
	CreatedOn string `yaml:"created_at"`
}

type seedEmployee struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Role       string `yaml:"role"`
	Department string `yaml:"department"`
	Status     string `yaml:"status"`
}

type seedProject struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	ClientIDs   []string   `yaml:"client_ids"`
	Status      string     `yaml:"status"`
	Progress    int        `yaml:"progress"`
	StartDate   string     `yaml:"start_date"`
	DueDate     string     `yaml:"due_date"`
	Budget      float64    `yaml:"budget"`
	Tasks       []seedTask `yaml:"tasks"`
}

type seedTask struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Status      string   `yaml:"status"`
	Priority    string   `yaml:"priority"`
	AssigneeID  string   `yaml:"assignee_id"`
	DueDate     string   `yaml:"due_date"`
	CreatedOn   string   `yaml:"created_at"`
	Tags        []string `yaml:"tags"`
}

type seedComment struct {
	ID              string      `yaml:"id"`
	TaskID          string      `yaml:"task_id"`
	ProjectID       string      `yaml:"project_id"`
	AuthorID        string      `yaml:"author_id"`
	AuthorType      string      `yaml:"author_type"`
	AuthorName      string      `yaml:"author_name"`
	Content         string      `yaml:"content"`
	Images          []string    `yaml:"images"`
	Status          string      `yaml:"status"`
	RejectionReason string      `yaml:"rejection_reason"`
	CreatedAt       string      `yaml:"created_at"`
	Replies         []seedReply `yaml:"replies"`
}

type seedReply struct {
	ID         string `yaml:"id"`
	AuthorID   string `yaml:"author_id"`
	AuthorType string `yaml:"author_type"`
	AuthorName string `yaml:"author_name"`
	Content    string `yaml:"content"`
	CreatedAt  string `yaml:"created_at"`
}

type seedSubscription struct {
	ID          string             `yaml:"id"`
	ClientID    string             `yaml:"client_id"`
	ProjectID   string             `yaml:"project_id"`
	Name        string             `yaml:"name"`
	BillingType string             `yaml:"billing_type"`
	Status      string             `yaml:"status"`
	TotalValue  float64            `yaml:"total_value"`
	AmountPaid  float64            `yaml:"amount_paid"`
	Notes       string             `yaml:"notes"`
	Milestones  []models.Milestone `yaml:"milestones"`
}

type seedReport struct {
	ID         string `yaml:"id"`
	EmployeeID string `yaml:"employee_id"`
	ProjectID  string `yaml:"project_id"`
	Date       string `yaml:"date"`
	Content    string `yaml:"content"`
	CreatedAt  string `yaml:"created_at"`
}

// SeedData is the demo data set a fresh store is loaded with.
type SeedData struct {
	Clients       []models.Client
	Employees     []models.Employee
	Projects      []models.Project
	Comments      []models.TaskComment
	Subscriptions []models.Subscription
	Reports       []models.EODReport
}

// LoadSeed decodes the embedded demo data set.
func LoadSeed() (*SeedData, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(seedYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}

	data := &SeedData{}
	for _, c := range doc.Clients {
		data.Clients = append(data.Clients, models.Client{
			ID:        c.ID,
			Name:      c.Name,
			Company:   c.Company,
			Email:     c.Email,
			Phone:     c.Phone,
			Status:    models.ClientStatus(c.Status),
			Industry:  c.Industry,
			Address:   c.Address,
			CreatedOn: c.CreatedOn,
		})
	}

	for _, e := range doc.Employees {
		data.Employees = append(data.Employees, models.Employee{
			ID:         e.ID,
			Name:       e.Name,
			Email:      e.Email,
			Role:       e.Role,
			Department: e.Department,
			Status:     models.EmployeeStatus(e.Status),
		})
	}

	for _, p := range doc.Projects {
		project := models.Project{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			ClientIDs:   p.ClientIDs,
			Status:      models.ProjectStatus(p.Status),
			Progress:    p.Progress,
			StartDate:   p.StartDate,
			DueDate:     p.DueDate,
			Budget:      p.Budget,
			Columns:     models.DefaultColumns(p.ID),
		}
		for i, t := range p.Tasks {
			project.Tasks = append(project.Tasks, models.Task{
				ID:          t.ID,
				ProjectID:   p.ID,
				Title:       t.Title,
				Description: t.Description,
				Status:      t.Status,
				Priority:    models.TaskPriority(t.Priority),
				AssigneeID:  t.AssigneeID,
				DueDate:     t.DueDate,
				CreatedOn:   t.CreatedOn,
				Tags:        t.Tags,
				Seq:         int64(i + 1),
			})
		}
		data.Projects = append(data.Projects, project)
	}

	for _, c := range doc.Comments {
		createdAt, err := time.Parse(time.RFC3339, c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("comment %s: invalid created_at: %w", c.ID, err)
		}
		comment := models.TaskComment{
			ID:              c.ID,
			TaskID:          c.TaskID,
			ProjectID:       c.ProjectID,
			AuthorID:        c.AuthorID,
			AuthorType:      models.Role(c.AuthorType),
			AuthorName:      c.AuthorName,
			Content:         c.Content,
			Images:          c.Images,
			Status:          models.CommentStatus(c.Status),
			RejectionReason: c.RejectionReason,
			CreatedAt:       createdAt,
		}
		if comment.Images == nil {
			comment.Images = []string{}
		}
		for _, r := range c.Replies {
			replyAt, err := time.Parse(time.RFC3339, r.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("reply %s: invalid created_at: %w", r.ID, err)
			}
			comment.Replies = append(comment.Replies, models.TaskCommentReply{
				ID:         r.ID,
				CommentID:  c.ID,
				AuthorID:   r.AuthorID,
				AuthorType: models.Role(r.AuthorType),
				AuthorName: r.AuthorName,
				Content:    r.Content,
				CreatedAt:  replyAt,
			})
		}
		data.Comments = append(data.Comments, comment)
	}

	for _, s := range doc.Subscriptions {
		data.Subscriptions = append(data.Subscriptions, models.Subscription{
			ID:          s.ID,
			ClientID:    s.ClientID,
			ProjectID:   s.ProjectID,
			Name:        s.Name,
			BillingType: models.BillingType(s.BillingType),
			Status:      models.SubscriptionStatus(s.Status),
			TotalValue:  s.TotalValue,
			AmountPaid:  s.AmountPaid,
			Notes:       s.Notes,
			Milestones:  s.Milestones,
		})
	}

	for _, r := range doc.Reports {
		createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("report %s: invalid created_at: %w", r.ID, err)
		}
		data.Reports = append(data.Reports, models.EODReport{
			ID:         r.ID,
			EmployeeID: r.EmployeeID,
			ProjectID:  r.ProjectID,
			Date:       r.Date,
			Content:    r.Content,
			CreatedAt:  createdAt,
		})
	}

	return data, nil
}

// Seed loads the demo data set into db. A store that already holds projects
// is left untouched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Project{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if count > 0 {
		logging.Logger.Debug("store already populated, skipping seed")
		return nil
	}

	data, err := LoadSeed()
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&data.Clients).Error; err != nil {
			return fmt.Errorf("failed to seed clients: %w", err)
		}
		if err := tx.Create(&data.Employees).Error; err != nil {
			return fmt.Errorf("failed to seed employees: %w", err)
		}
		// Columns and tasks are created through the project associations.
		if err := tx.Create(&data.Projects).Error; err != nil {
			return fmt.Errorf("failed to seed projects: %w", err)
		}
		if err := tx.Create(&data.Comments).Error; err != nil {
			return fmt.Errorf("failed to seed comments: %w", err)
		}
		if err := tx.Create(&data.Subscriptions).Error; err != nil {
			return fmt.Errorf("failed to seed subscriptions: %w", err)
		}
		if err := tx.Create(&data.Reports).Error; err != nil {
			return fmt.Errorf("failed to seed reports: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Logger.WithFields(logrus.Fields{
		"clients":   len(data.Clients),
		"employees": len(data.Employees),
		"projects":  len(data.Projects),
		"comments":  len(data.Comments),
	}).Info("seeded demo data")
	return nil
}
