package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wallet-gateway/internal/domain/session"
	"wallet-gateway/internal/domain/user"
)

// UserRepository バックエンドAPI実装のuser.UserRepository
type UserRepository struct {
	client *Client
	tracer trace.Tracer
}

// NewUserRepository 新しいUserRepositoryを作成
func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{
		client: client,
		tracer: otel.Tracer("user-repository"),
	}
}

// userDTO バックエンドのユーザー表現
type userDTO struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Country   string `json:"country"`
	KYCStatus string `json:"kycStatus"`
	Suspended bool   `json:"suspended"`
	CreatedAt string `json:"createdAt"`
}

// userPageDTO ユーザー一覧のページネーションエンベロープ
type userPageDTO struct {
	Users      []userDTO `json:"users"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
	Total      int       `json:"total"`
}

// FetchProfile 認証ユーザー自身のプロフィールを取得
func (r *UserRepository) FetchProfile(ctx context.Context, cred session.Credential) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.FetchProfile")
	defer span.End()

	var dto userDTO
	if err := r.client.getJSON(ctx, cred, "/profile", nil, &dto); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	u, err := toUser(dto)
	if err != nil {
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "profile fetched")
	return u, nil
}

// UpdateProfile 認証ユーザー自身のプロフィールを更新
func (r *UserRepository) UpdateProfile(ctx context.Context, cred session.Credential, update user.ProfileUpdate) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.UpdateProfile")
	defer span.End()

	// PATCH /profile/* : フィールドごとに個別のパスを呼び出す
	if update.FullName != nil {
		if err := r.patchProfileField(ctx, cred, "name", *update.FullName); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
	}
	if update.Country != nil {
		if err := r.patchProfileField(ctx, cred, "country", *update.Country); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
	}

	// 更新後の状態を再取得して返す（fetch-after-write）
	return r.FetchProfile(ctx, cred)
}

// patchProfileField プロフィールの1フィールドを更新
func (r *UserRepository) patchProfileField(ctx context.Context, cred session.Credential, field, value string) error {
	body := map[string]string{"value": value}
	if err := r.client.patchJSONBody(ctx, cred, "/profile/"+field, body, nil); err != nil {
		return fmt.Errorf("failed to update profile field %s: %w", field, err)
	}
	return nil
}

// ListUsers 全ユーザーの一覧を1ページ取得（管理者用）
func (r *UserRepository) ListUsers(ctx context.Context, cred session.Credential, page, limit int) (*user.UserPage, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.ListUsers")
	defer span.End()

	span.SetAttributes(
		attribute.Int("users.page", page),
		attribute.Int("users.limit", limit),
	)

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var dto userPageDTO
	if err := r.client.getJSON(ctx, cred, "/admin/users", query, &dto); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, 0, len(dto.Users))
	for _, item := range dto.Users {
		u, err := toUser(item)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
		users = append(users, u)
	}

	span.SetAttributes(attribute.Int("users.result_count", len(users)))
	span.SetStatus(otelcodes.Ok, fmt.Sprintf("listed %d users", len(users)))

	return &user.UserPage{
		Users:      users,
		PageNum:    dto.Page,
		Limit:      dto.Limit,
		TotalPages: dto.TotalPages,
		Total:      dto.Total,
	}, nil
}

// UpdateUser 指定ユーザーを更新（管理者用、メールアドレスで指定）
func (r *UserRepository) UpdateUser(ctx context.Context, cred session.Credential, email string, suspended *bool, kycStatus *user.KYCStatus) error {
	ctx, span := r.tracer.Start(ctx, "UserRepository.UpdateUser")
	defer span.End()

	span.SetAttributes(attribute.String("users.email", email))

	body := map[string]interface{}{}
	if suspended != nil {
		body["suspended"] = *suspended
	}
	if kycStatus != nil {
		body["kycStatus"] = kycStatus.String()
	}

	if err := r.client.patchJSONBody(ctx, cred, "/admin/users/"+url.PathEscape(email), body, nil); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to update user: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "user updated")
	return nil
}

// DeleteUser 指定ユーザーを削除（管理者用、IDで指定）
func (r *UserRepository) DeleteUser(ctx context.Context, cred session.Credential, id string) error {
	ctx, span := r.tracer.Start(ctx, "UserRepository.DeleteUser")
	defer span.End()

	span.SetAttributes(attribute.String("users.id", id))

	if err := r.client.deleteJSON(ctx, cred, "/admin/users/"+url.PathEscape(id), nil); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "user deleted")
	return nil
}

// toUser DTOからエンティティを再構築
func toUser(dto userDTO) (*user.User, error) {
	var createdAt time.Time
	if dto.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, dto.CreatedAt); err == nil {
			createdAt = parsed
		}
	}

	u, err := user.NewUser(
		dto.ID,
		dto.Email,
		dto.FullName,
		dto.Country,
		user.KYCStatus(dto.KYCStatus),
		dto.Suspended,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return u, nil
}
