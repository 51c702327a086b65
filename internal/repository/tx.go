package repository

import (
	"github.com/storeforge-next/internal/logger"

	"gorm.io/gorm"
)

// TxRunner 事务执行器：回调返回 nil 则提交，返回错误则整体回滚
type TxRunner interface {
	Transaction(fn func(tx *gorm.DB) error) error
}

// GormTxRunner GORM 实现
type GormTxRunner struct {
	db *gorm.DB
}

// NewTxRunner 创建事务执行器
func NewTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

// Transaction 在单个数据库事务内执行回调
// 失败时记录一次日志并原样返回错误，错误翻译交给上层处理
func (r *GormTxRunner) Transaction(fn func(tx *gorm.DB) error) error {
	err := r.db.Transaction(fn)
	if err != nil {
		logger.Errorw("transaction_rolled_back", "error", err)
	}
	return err
}
