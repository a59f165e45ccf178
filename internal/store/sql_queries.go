// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/pivault/pivault/models"
)

// Column sets shared between INSERT and SELECT builders. Keeping them in one
// place keeps the scan order in the repositories honest.
var (
	userColumns = []string{
		"id", "email", "password_hash", "master_key_salt",
		"totp_secret", "totp_enabled", "language", "auto_lock_minutes",
		"created_at", "updated_at",
	}

	categoryColumns = []string{"id", "user_id", "name", "icon", "created_at"}

	vaultEntryColumns = []string{
		"id", "user_id", "category_id", "encrypted_data", "nonce",
		"created_at", "updated_at",
	}

	auditColumns = []string{
		"id", "user_id", "action", "ip_address", "user_agent",
		"success", "timestamp",
	}
)

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns(userColumns...).
		Values(
			user.ID, user.Email, user.PasswordHash, user.MasterKeySalt,
			user.TOTPSecret, user.TOTPEnabled, user.Language, user.AutoLockMinutes,
			user.CreatedAt, user.UpdatedAt,
		).
		ToSql()
}

func buildSelectUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildSelectUserByIDQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// buildUpdateUserSettingsQuery updates only the fields present in the
// settings patch. Nil fields are left untouched.
func buildUpdateUserSettingsQuery(b sq.StatementBuilderType, userID string, settings models.SettingsUpdate, now time.Time) (string, []any, error) {
	update := b.Update(models.User{}.TableName()).
		Set("updated_at", now).
		Where(sq.Eq{"id": userID})

	if settings.Language != nil {
		update = update.Set("language", *settings.Language)
	}
	if settings.AutoLockMinutes != nil {
		update = update.Set("auto_lock_minutes", *settings.AutoLockMinutes)
	}

	return update.ToSql()
}

func buildUpdateUserTOTPQuery(b sq.StatementBuilderType, userID string, secret string, enabled bool, now time.Time) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		Set("totp_secret", secret).
		Set("totp_enabled", enabled).
		Set("updated_at", now).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildInsertCategoryQuery(b sq.StatementBuilderType, category models.Category) (string, []any, error) {
	return b.Insert(category.TableName()).
		Columns(categoryColumns...).
		Values(category.ID, category.UserID, category.Name, category.Icon, category.CreatedAt).
		ToSql()
}

func buildSelectCategoriesQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(categoryColumns...).
		From(models.Category{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
}

func buildSelectCategoryQuery(b sq.StatementBuilderType, categoryID string, userID string) (string, []any, error) {
	return b.Select(categoryColumns...).
		From(models.Category{}.TableName()).
		Where(sq.Eq{"id": categoryID, "user_id": userID}).
		ToSql()
}

func buildUpdateCategoryQuery(b sq.StatementBuilderType, category models.Category) (string, []any, error) {
	return b.Update(category.TableName()).
		Set("name", category.Name).
		Set("icon", category.Icon).
		Where(sq.Eq{"id": category.ID, "user_id": category.UserID}).
		ToSql()
}

func buildDeleteCategoryQuery(b sq.StatementBuilderType, categoryID string, userID string) (string, []any, error) {
	return b.Delete(models.Category{}.TableName()).
		Where(sq.Eq{"id": categoryID, "user_id": userID}).
		ToSql()
}

// buildDetachEntriesQuery clears category_id on every entry of a deleted
// category so the entries survive as uncategorized.
func buildDetachEntriesQuery(b sq.StatementBuilderType, categoryID string, userID string) (string, []any, error) {
	return b.Update(models.VaultEntry{}.TableName()).
		Set("category_id", nil).
		Where(sq.Eq{"category_id": categoryID, "user_id": userID}).
		ToSql()
}

func buildInsertEntryQuery(b sq.StatementBuilderType, entry models.VaultEntry) (string, []any, error) {
	return b.Insert(entry.TableName()).
		Columns(vaultEntryColumns...).
		Values(
			entry.ID, entry.UserID, entry.CategoryID, entry.EncryptedData,
			entry.Nonce, entry.CreatedAt, entry.UpdatedAt,
		).
		ToSql()
}

// buildSelectEntriesQuery lists a user's entries, optionally narrowed to one
// category.
func buildSelectEntriesQuery(b sq.StatementBuilderType, userID string, categoryID *string) (string, []any, error) {
	query := b.Select(vaultEntryColumns...).
		From(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC")

	if categoryID != nil {
		query = query.Where(sq.Eq{"category_id": *categoryID})
	}

	return query.ToSql()
}

func buildSelectEntryQuery(b sq.StatementBuilderType, entryID string, userID string) (string, []any, error) {
	return b.Select(vaultEntryColumns...).
		From(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"id": entryID, "user_id": userID}).
		ToSql()
}

func buildUpdateEntryQuery(b sq.StatementBuilderType, entry models.VaultEntry, now time.Time) (string, []any, error) {
	return b.Update(entry.TableName()).
		Set("category_id", entry.CategoryID).
		Set("encrypted_data", entry.EncryptedData).
		Set("nonce", entry.Nonce).
		Set("updated_at", now).
		Where(sq.Eq{"id": entry.ID, "user_id": entry.UserID}).
		ToSql()
}

func buildDeleteEntryQuery(b sq.StatementBuilderType, entryID string, userID string) (string, []any, error) {
	return b.Delete(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"id": entryID, "user_id": userID}).
		ToSql()
}

func buildDeleteAllEntriesQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Delete(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildInsertAuditEventQuery(b sq.StatementBuilderType, event models.AuditEvent) (string, []any, error) {
	return b.Insert(event.TableName()).
		Columns(auditColumns...).
		Values(
			event.ID, event.UserID, event.Action, event.IPAddress,
			event.UserAgent, event.Success, event.Timestamp,
		).
		ToSql()
}

func buildSelectRecentAuditEventsQuery(b sq.StatementBuilderType, userID string, limit int) (string, []any, error) {
	return b.Select(auditColumns...).
		From(models.AuditEvent{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("timestamp DESC").
		Limit(uint64(limit)).
		ToSql()
}

func buildInsertLoginAttemptQuery(b sq.StatementBuilderType, attempt models.LoginAttempt) (string, []any, error) {
	return b.Insert(attempt.TableName()).
		Columns("id", "email", "ip_address", "timestamp").
		Values(attempt.ID, attempt.Email, attempt.IPAddress, attempt.Timestamp).
		ToSql()
}

func buildCountLoginAttemptsQuery(b sq.StatementBuilderType, email string, ip string, since time.Time) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(models.LoginAttempt{}.TableName()).
		Where(sq.Eq{"email": email, "ip_address": ip}).
		Where(sq.GtOrEq{"timestamp": since}).
		ToSql()
}

func buildClearLoginAttemptsQuery(b sq.StatementBuilderType, email string, ip string) (string, []any, error) {
	return b.Delete(models.LoginAttempt{}.TableName()).
		Where(sq.Eq{"email": email, "ip_address": ip}).
		ToSql()
}
