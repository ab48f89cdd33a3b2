// Package nonlinear will provide iterative nonlinear least-squares
// drivers on top of the linear engines:
//   - Gauss-Newton: relinearize, eliminate, back-substitute, step
//   - Levenberg-Marquardt: damped steps with trust-region control
//
// Each iteration linearizes a nonlinear factor graph at the current
// estimate into a gaussian.FactorGraph, eliminates it with the existing
// ordering and tree machinery, and applies the solved delta.
package nonlinear
