package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AnswerMap stores question id -> chosen letter as a JSON object in a CLOB column.
type AnswerMap map[string]string

// Value implements the driver.Valuer interface
func (a AnswerMap) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (a *AnswerMap) Scan(value interface{}) error {
	var bytesToParse []byte

	switch v := value.(type) {
	case nil:
		*a = AnswerMap{}
		return nil
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("AnswerMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*a = AnswerMap{}
		return nil
	}

	m := make(map[string]string)
	if err := json.Unmarshal(bytesToParse, &m); err != nil {
		return fmt.Errorf("AnswerMap Scan: %w", err)
	}
	*a = m
	return nil
}

// Quiz is a row of the quizzes table.
type Quiz struct {
	ID           string    `db:"ID"`
	UserID       string    `db:"USER_ID"`
	Topic        string    `db:"TOPIC"`
	NumQuestions int       `db:"NUM_QUESTIONS"`
	Difficulty   string    `db:"DIFFICULTY"`
	CreatedAt    time.Time `db:"CREATED_AT"`
}

// Question is a row of the questions table. Position keeps generation order.
type Question struct {
	ID            string `db:"ID"`
	QuizID        string `db:"QUIZ_ID"`
	Position      int    `db:"POSITION"`
	Text          string `db:"TEXT"`
	OptionA       string `db:"OPTION_A"`
	OptionB       string `db:"OPTION_B"`
	OptionC       string `db:"OPTION_C"`
	OptionD       string `db:"OPTION_D"`
	CorrectOption string `db:"CORRECT_OPTION"`
}

// QuizResult is a row of the quiz_results table.
type QuizResult struct {
	ID          string    `db:"ID"`
	UserID      string    `db:"USER_ID"`
	QuizID      string    `db:"QUIZ_ID"`
	Score       int       `db:"SCORE"`
	CompletedAt time.Time `db:"COMPLETED_AT"`
	Answers     AnswerMap `db:"ANSWERS"`
}
