package user

import (
	"context"
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"HRIS-backend/internal/platform/apierr"
	platformdb "HRIS-backend/internal/platform/db"
)

const msgNotFound = "User not found."

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service { return &Service{db: db, store: NewStore(db)} }

// GET /users
func (s *Service) List(ctx context.Context) ([]UserResponse, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

// GET /users/:id
func (s *Service) Get(ctx context.Context, id uint64) (UserResponse, error) {
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	if row == nil {
		return UserResponse{}, apierr.ErrNotFound(msgNotFound)
	}
	return row.toDTO(), nil
}

// POST /users。password は bcrypt で保存する。
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	taken, err := s.store.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return UserResponse{}, err
	}
	if taken {
		return UserResponse{}, apierr.ErrValidation(map[string][]string{
			"email": {"The email has already been taken."},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	userType := req.UserType
	if userType == "" {
		userType = "user"
	}

	id, err := s.store.Insert(ctx, User{
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		ProfilePhoto: req.ProfilePhoto,
		UserType:     userType,
	})
	if err != nil {
		return UserResponse{}, err
	}

	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	if row == nil {
		return UserResponse{}, apierr.ErrInternal("inserted but not found")
	}
	return row.toDTO(), nil
}

// PUT /users/:id
func (s *Service) Update(ctx context.Context, id uint64, req UpdateUserRequest) (UserResponse, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	if existing == nil {
		return UserResponse{}, apierr.ErrNotFound(msgNotFound)
	}

	if req.Email != nil {
		taken, err := s.store.EmailTaken(ctx, *req.Email, id)
		if err != nil {
			return UserResponse{}, err
		}
		if taken {
			return UserResponse{}, apierr.ErrValidation(map[string][]string{
				"email": {"The email has already been taken."},
			})
		}
	}

	sets, args, err := changes(req)
	if err != nil {
		return UserResponse{}, err
	}
	if len(sets) == 0 {
		return existing.toDTO(), nil
	}
	if err := s.store.UpdateFields(ctx, id, sets, args); err != nil {
		return UserResponse{}, err
	}

	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	if row == nil {
		return UserResponse{}, apierr.ErrInternal("updated but not found")
	}
	return row.toDTO(), nil
}

// DELETE /users/:id
func (s *Service) Delete(ctx context.Context, id uint64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierr.ErrNotFound(msgNotFound)
	}
	return nil
}

// GET /users/multiple?ids=1,2,3
func (s *Service) Multiple(ctx context.Context, ids []uint64) ([]UserResponse, error) {
	rows, err := s.store.GetByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.ErrNotFound(msgNotFound)
	}
	return toDTOs(rows), nil
}

// PATCH /users/bulk-update。従業員側と同じく全件か0件か。
func (s *Service) BulkUpdate(ctx context.Context, req BulkUpdateRequest) (int64, []UserResponse, error) {
	sets, args, err := changes(req.Data)
	if err != nil {
		return 0, nil, err
	}
	if len(sets) == 0 {
		return 0, nil, apierr.ErrValidation(map[string][]string{
			"data": {"The data field is required."},
		})
	}

	var (
		updated int64
		out     []UserResponse
	)
	err = platformdb.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx platformdb.DBTX) error {
		n, err := s.store.CountByIDs(ctx, tx, req.IDs)
		if err != nil {
			return err
		}
		if n != int64(len(uniq(req.IDs))) {
			return apierr.ErrValidation(map[string][]string{
				"ids": {"One or more of the selected ids do not exist."},
			})
		}
		updated, err = s.store.UpdateByIDs(ctx, tx, req.IDs, sets, args)
		if err != nil {
			return err
		}
		rows, err := s.store.GetByIDs(ctx, tx, req.IDs)
		if err != nil {
			return err
		}
		out = toDTOs(rows)
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return updated, out, nil
}

// changes: SET句と引数を宣言順で返す。password はハッシュしてから積む。
func changes(req UpdateUserRequest) ([]string, []any, error) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if req.FirstName != nil {
		set("first_name", *req.FirstName)
	}
	if req.MiddleName != nil {
		set("middle_name", *req.MiddleName)
	}
	if req.LastName != nil {
		set("last_name", *req.LastName)
	}
	if req.UserName != nil {
		set("user_name", *req.UserName)
	}
	if req.Email != nil {
		set("email", *req.Email)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, nil, err
		}
		set("password", string(hash))
	}
	if req.PhoneNumber != nil {
		set("phone_number", *req.PhoneNumber)
	}
	if req.ProfilePhoto != nil {
		set("profile_photo", *req.ProfilePhoto)
	}
	if req.UserType != nil {
		set("user_type", *req.UserType)
	}
	return sets, args, nil
}

func uniq(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toDTOs(rows []User) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDTO())
	}
	return out
}
