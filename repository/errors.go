package repository

import (
	"errors"
	"fmt"
	"strings"

	domainErrors "fullstack-go-server/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// translate 将驱动层错误翻译为领域错误
// - 外键违例（按构造不应出现）→ ErrIntegrityViolation
// - 连接类/超时故障（瞬态）→ ErrStorageUnavailable
// 其余错误原样上抛，由调用方按内部错误处理
func translate(err error) error {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		// 23503 = foreign_key_violation
		case pgErr.Code == "23503":
			return fmt.Errorf("%w: %s", domainErrors.ErrIntegrityViolation, pgErr.Message)
		// 08xxx = connection exception 类
		case strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%w: %s", domainErrors.ErrStorageUnavailable, pgErr.Message)
		}
		return err
	}

	// 建连失败或超时同样视为瞬态
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", domainErrors.ErrStorageUnavailable, err)
	}

	return err
}
