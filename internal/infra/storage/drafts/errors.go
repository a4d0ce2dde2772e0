package drafts

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("drafts.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("drafts.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("drafts.repository: failed to scan row")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("drafts.repository: transaction error")

	// ErrEncode возвращается при ошибке сериализации слотов
	ErrEncode = errors.New("drafts.repository: failed to encode slots")
)

var (
	// ErrRedisCommand возвращается при ошибке выполнения команды Redis
	ErrRedisCommand = errors.New("drafts.repository: redis command failed")

	// ErrDecode возвращается, если сохраненный черновик не удалось разобрать
	ErrDecode = errors.New("drafts.repository: failed to decode draft")

	// ErrConflict возвращается, если оптимистичная транзакция не прошла после всех попыток
	ErrConflict = errors.New("drafts.repository: concurrent modification")
)
