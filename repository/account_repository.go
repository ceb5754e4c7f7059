package repository

import (
	"errors"
	"fmt"

	"itdocsapi/config"
	"itdocsapi/models"
	"itdocsapi/pkg/apperr"

	"gorm.io/gorm"
)

// accountGroupMembers is the join table of Account.Groups.
const accountGroupMembers = "account_group_members"

// AccountRepository provides data access for API accounts and account groups.
type AccountRepository interface {
	Create(tx *gorm.DB, account *models.Account) error
	Update(tx *gorm.DB, account *models.Account) error
	Delete(tx *gorm.DB, id uint) error
	GetByID(tx *gorm.DB, id uint) (*models.Account, error)
	GetByUsername(tx *gorm.DB, username string) (*models.Account, error)
	GetAll(tx *gorm.DB) ([]models.Account, error)
	// CountByUsername counts accounts named username, ignoring exceptID.
	CountByUsername(tx *gorm.DB, username string, exceptID uint) (int64, error)

	CreateGroup(tx *gorm.DB, group *models.AccountGroup) error
	UpdateGroup(tx *gorm.DB, group *models.AccountGroup) error
	DeleteGroup(tx *gorm.DB, id uint) error
	GetGroupByID(tx *gorm.DB, id uint) (*models.AccountGroup, error)
	GetGroupsByIDs(tx *gorm.DB, ids []uint) ([]models.AccountGroup, error)
	GetAllGroups(tx *gorm.DB) ([]models.AccountGroup, error)
	CountGroupsByName(tx *gorm.DB, name string, exceptID uint) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository() AccountRepository {
	return &accountRepository{
		db: config.DB,
	}
}

// NewAccountRepositoryWithDB creates an account repository over db.
func NewAccountRepositoryWithDB(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create inserts account and its membership rows. Groups must already exist.
func (r *accountRepository) Create(tx *gorm.DB, account *models.Account) error {
	db := conn(tx, r.db)
	if err := db.Omit("Groups.*").Create(account).Error; err != nil {
		return fmt.Errorf("failed to insert account %s: %w", account.Username, err)
	}
	return nil
}

// Update saves the account columns and replaces its memberships with account.Groups.
func (r *accountRepository) Update(tx *gorm.DB, account *models.Account) error {
	db := conn(tx, r.db)
	err := db.Model(account).
		Select("username", "email", "password_hash", "is_active").
		Updates(account).Error
	if err != nil {
		return fmt.Errorf("failed to update account id=%d: %w", account.ID, err)
	}

	assoc := db.Model(account).Omit("Groups.*").Association("Groups")
	if len(account.Groups) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(account.Groups)
	}
	if err != nil {
		return fmt.Errorf("failed to update groups of account id=%d: %w", account.ID, err)
	}
	return nil
}

// Delete removes the account and its membership rows.
func (r *accountRepository) Delete(tx *gorm.DB, id uint) error {
	db := conn(tx, r.db)
	if err := db.Table(accountGroupMembers).Where("account_id = ?", id).Delete(map[string]interface{}{}).Error; err != nil {
		return fmt.Errorf("failed to clear groups of account id=%d: %w", id, err)
	}
	res := db.Delete(&models.Account{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete account id=%d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("account", id)
	}
	return nil
}

func (r *accountRepository) GetByID(tx *gorm.DB, id uint) (*models.Account, error) {
	db := conn(tx, r.db)
	var account models.Account
	err := db.Preload("Groups", orderByID).Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("account", id)
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(tx *gorm.DB, username string) (*models.Account, error) {
	db := conn(tx, r.db)
	var account models.Account
	err := db.Preload("Groups").Where("username = ?", username).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Entity: "account", ID: username}
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAll lists accounts, most recently joined first.
func (r *accountRepository) GetAll(tx *gorm.DB) ([]models.Account, error) {
	db := conn(tx, r.db)
	var accounts []models.Account
	if err := db.Preload("Groups", orderByID).Order("date_joined DESC").Order("id DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) CountByUsername(tx *gorm.DB, username string, exceptID uint) (int64, error) {
	db := conn(tx, r.db)
	var count int64
	q := db.Model(&models.Account{}).Where("username = ?", username)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *accountRepository) CreateGroup(tx *gorm.DB, group *models.AccountGroup) error {
	db := conn(tx, r.db)
	if err := db.Create(group).Error; err != nil {
		return fmt.Errorf("failed to insert account group %s: %w", group.Name, err)
	}
	return nil
}

func (r *accountRepository) UpdateGroup(tx *gorm.DB, group *models.AccountGroup) error {
	db := conn(tx, r.db)
	if err := db.Model(group).Select("name").Updates(group).Error; err != nil {
		return fmt.Errorf("failed to update account group id=%d: %w", group.ID, err)
	}
	return nil
}

// DeleteGroup removes the group and every membership in it. Member accounts stay.
func (r *accountRepository) DeleteGroup(tx *gorm.DB, id uint) error {
	db := conn(tx, r.db)
	if err := db.Table(accountGroupMembers).Where("account_group_id = ?", id).Delete(map[string]interface{}{}).Error; err != nil {
		return fmt.Errorf("failed to clear members of account group id=%d: %w", id, err)
	}
	res := db.Delete(&models.AccountGroup{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete account group id=%d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("account_group", id)
	}
	return nil
}

func (r *accountRepository) GetGroupByID(tx *gorm.DB, id uint) (*models.AccountGroup, error) {
	db := conn(tx, r.db)
	var group models.AccountGroup
	err := db.Where("id = ?", id).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("account_group", id)
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *accountRepository) GetGroupsByIDs(tx *gorm.DB, ids []uint) ([]models.AccountGroup, error) {
	db := conn(tx, r.db)
	var groups []models.AccountGroup
	if len(ids) == 0 {
		return groups, nil
	}
	if err := db.Where("id IN ?", ids).Order("id").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *accountRepository) GetAllGroups(tx *gorm.DB) ([]models.AccountGroup, error) {
	db := conn(tx, r.db)
	var groups []models.AccountGroup
	if err := db.Order("id").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *accountRepository) CountGroupsByName(tx *gorm.DB, name string, exceptID uint) (int64, error) {
	db := conn(tx, r.db)
	var count int64
	q := db.Model(&models.AccountGroup{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
