package service

const (
	MaxPayoffMonths  = 600  // 50 años máximo para pagar deudas
	BalanceTolerance = 0.01 // tolerancia para considerar deuda pagada

	// Límites del solver de tasa (Newton-Raphson)
	initialRateGuess    = 0.01  // 1% mensual
	maxSolverIterations = 100
	solverTolerance     = 1e-8  // error residual sobre el pago
	minSolverRate       = 0.001 // piso al resetear estimaciones no positivas
	maxMonthlyRate      = 1.0   // 100% mensual
	derivativeFloor     = 1e-12 // derivada casi singular, no dar el paso

	// Umbral bajo el cual una tasa mensual se trata como cero
	nearZeroRate = 1e-10
)
