// Package diagnostics evaluates dual potentials produced by the estimator.
//
// Every function is a pure, read-only computation over (α, β) and the problem
// inputs; none of them is needed by the optimization loop itself. They back
// convergence reports and offline comparisons:
//
//   - NormGradDual       : Euclidean norm of the full dual gradient.
//   - GradNormTrajectory : NormGradDual along a trajectory of iterates.
//   - ScalarLoss         : transport cost ⟨M, π⟩ of the induced plan.
//   - Reg1Loss           : KL(π ‖ a⊗b) of the induced plan.
//   - Reg2Loss           : KL(ν ‖ b) of the induced target measure.
//   - KLDiv              : KL(p ‖ q) with the convention 0·log 0 = 0.
//   - TransportPlan      : the normalized plan as a gonum *mat.Dense.
//
// Complexity: O(ns·nt) per evaluation unless noted otherwise.
package diagnostics
