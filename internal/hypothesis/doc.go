// Package hypothesis implements the statistical tests behind the notebook
// helpers. Every routine omits missing (NaN) observations instead of failing
// on them: independent samples drop NaNs per sample, paired and repeated
// designs drop the whole row.
package hypothesis
