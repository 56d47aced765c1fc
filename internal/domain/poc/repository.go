package poc

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("collection point not found")

	ErrDiaryNotFound = errors.New("diary center not found")
)

type Repository interface {
	SavePOC(ctx context.Context, p *POC) error

	FindPOCByID(ctx context.Context, pocID int64) (*POC, error)

	FindAllPOCs(ctx context.Context, activeOnly bool) ([]*POC, error)

	SetPOCActiveStatus(ctx context.Context, pocID int64, isActive bool) error

	AssignDiary(ctx context.Context, pocID int64, diaryID int64) error

	SaveDiary(ctx context.Context, d *Diary) error

	FindDiaryByID(ctx context.Context, diaryID int64) (*Diary, error)

	FindAllDiaries(ctx context.Context) ([]*Diary, error)
}
