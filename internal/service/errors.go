package service

import (
	"errors"
	"fmt"
)

// 查询失败的哨兵错误，detail 文案与上游 API 保持逐字一致
// （包括上游原有的拼写问题，契约测试会断言这些字符串）
var (
	ErrPlatformNotFound = errors.New("Platform not found")
	ErrNoMoviesForYear  = errors.New("No movies found for this year")
	ErrNoDurationMatch  = errors.New("No movies available (Only recieve 'min' as argument)")
	ErrNoScoreMatch     = errors.New("No movies found for this year o with this score")
	ErrNoScoreYearMatch = errors.New("No movies found for this year and score")
	ErrNoDataForYear    = errors.New("No data available for the specified year.")
	ErrNoActorData      = errors.New("No actor available")
	ErrNoCountryMatch   = errors.New("No se encontraron registros con los criterios de búsqueda aplicados")
	ErrTitleNotFound    = errors.New("Title not found")
)

// InvalidClassificationError 分级标签在该平台不存在（400 而非 404）
type InvalidClassificationError struct {
	Rating   string
	Platform string
}

func (e *InvalidClassificationError) Error() string {
	return fmt.Sprintf("El rating %s no es válido para la plataforma %s.", e.Rating, e.Platform)
}
