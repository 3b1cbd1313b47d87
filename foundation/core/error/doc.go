// Package error provides the structured error type of the mZW library.
//
// Package: error
// Title: mZW Error Handling
// Description: This package implements coded errors with severity, operation
//              context, details and captured stack frames. The core data
//              structures report contract violations through it: validation
//              errors for malformed or out-of-domain input, overflow errors when
//              a computation would leave its configured ceiling.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-02
// Modified: 2026-09-14
//
// Change History:
// - 2026-09-02 v0.1.0: Initial implementation with coded errors
// - 2026-09-14 v0.2.0: IsValidation/IsOverflow predicates
//
// Usage:
//
//	import mzwerror "github.com/msto63/mZW/foundation/core/error"
//
//	err := mzwerror.New("height must not be negative").
//	    WithCode(mzwerror.CodeValueOutOfRange).
//	    WithOperation("tower.Build").
//	    WithDetail("height", -1)
//
//	if mzwerror.IsValidation(err) {
//	    // caller error, do not retry
//	}
package error
