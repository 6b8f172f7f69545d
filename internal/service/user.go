package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"boardify-backend/internal/apperr"
	"boardify-backend/internal/auth"
	"boardify-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const searchLimit = 10

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskEntry is an assigned card joined with its list and board.
type TaskEntry struct {
	models.Card
	List  *models.List  `json:"list"`
	Board *models.Board `json:"board"`
}

// CalendarEntry is the compact projection used by the calendar view.
type CalendarEntry struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	DueDate    time.Time `json:"due_date"`
	Completed  bool      `json:"completed"`
	BoardID    uuid.UUID `json:"board_id"`
	BoardTitle string    `json:"board_title"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, apperr.New(apperr.ErrInvalid, "username, email and password are required")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	// The unique indexes arbitrate duplicates, concurrent registrations
	// included.
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.ErrAlreadyExists, "username or email already taken")
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies the credentials. Unknown user and wrong password are
// deliberately indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.New(apperr.ErrInvalid, "username and password are required")
	}
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.ErrUnauthorized, "invalid username or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.New(apperr.ErrUnauthorized, "invalid username or password")
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.ErrNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Search matches usernames case-insensitively by substring, capped at 10.
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	if query == "" {
		return []models.User{}, nil
	}
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("LOWER(username) LIKE ?", "%"+strings.ToLower(query)+"%").
		Limit(searchLimit).
		Find(&users).Error
	return users, err
}

// assignedCards returns every card the user is assigned to.
func (s *UserService) assignedCards(ctx context.Context, userID uuid.UUID) ([]TaskEntry, error) {
	db := s.db.WithContext(ctx)
	var cards []models.Card
	err := db.
		Joins("JOIN card_assignments ON card_assignments.card_id = cards.id").
		Where("card_assignments.user_id = ?", userID).
		Preload("Assignments.User").
		Preload("Attachments").
		Preload("Checklist").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}

	entries := make([]TaskEntry, 0, len(cards))
	for _, card := range cards {
		var list models.List
		if err := db.First(&list, "id = ?", card.ListID).Error; err != nil {
			return nil, err
		}
		var board models.Board
		if err := db.First(&board, "id = ?", list.BoardID).Error; err != nil {
			return nil, err
		}
		entries = append(entries, TaskEntry{Card: card, List: &list, Board: &board})
	}
	return entries, nil
}

// Tasks lists the user's assigned cards, due date ascending with undated
// cards last.
func (s *UserService) Tasks(ctx context.Context, userID uuid.UUID) ([]TaskEntry, error) {
	entries, err := s.assignedCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].DueDate, entries[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return entries, nil
}

// Calendar filters the user's assigned cards to those due in the given month.
func (s *UserService) Calendar(ctx context.Context, userID uuid.UUID, month time.Month, year int) ([]CalendarEntry, error) {
	entries, err := s.assignedCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []CalendarEntry{}
	for _, e := range entries {
		if e.DueDate == nil {
			continue
		}
		if e.DueDate.Month() != month || e.DueDate.Year() != year {
			continue
		}
		out = append(out, CalendarEntry{
			ID:         e.Card.ID,
			Title:      e.Card.Title,
			DueDate:    *e.DueDate,
			Completed:  e.Completed,
			BoardID:    e.Board.ID,
			BoardTitle: e.Board.Title,
		})
	}
	return out, nil
}
