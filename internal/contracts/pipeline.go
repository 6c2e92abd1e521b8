package contracts

// Pipeline Stage 정의 (SSOT)
// 모든 로그와 결과 스냅샷에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   S0 → S1 → S2 → S3 → S4        (build)
//   Windows  Scoring  Selection  Weights  Assembly
//   A0                            (advise, 독립 실행)

// Stage represents a pipeline stage
type Stage string

const (
	// StageWindows S0: 수익률 윈도우 추출
	// 책임: growth cache → metadata fallback, 가격/이력 없는 종목 제외
	// 위치: internal/signals/window.go
	StageWindows Stage = "S0_WINDOWS"

	// StageScoring S1: Ladder-Delta 추세 + 과거 성과 점수
	// 위치: internal/signals/
	StageScoring Stage = "S1_SCORING"

	// StageSelection S2: 정규화, 블렌드, Top-K 선택
	// 위치: internal/selection/
	StageSelection Stage = "S2_SELECTION"

	// StageWeights S3: 원시 가중치 + cap-and-normalize
	// 위치: internal/portfolio/weights.go
	StageWeights Stage = "S3_WEIGHTS"

	// StageAssembly S4: 금액/수량 환산
	// 위치: internal/portfolio/assembler.go
	StageAssembly Stage = "S4_ASSEMBLY"

	// StageAdvice A0: 보유 종목 리밸런싱 자문
	// 위치: internal/advisor/
	StageAdvice Stage = "A0_ADVICE"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "A0")
func (s Stage) ShortName() string {
	switch s {
	case StageWindows:
		return "S0"
	case StageScoring:
		return "S1"
	case StageSelection:
		return "S2"
	case StageWeights:
		return "S3"
	case StageAssembly:
		return "S4"
	case StageAdvice:
		return "A0"
	default:
		return "UNKNOWN"
	}
}
