// Package errors provides the shared error constructors used by every mZW
// module.
//
// Package: errors
// Title: Standard Error Constructors for mZW
// Description: Thin helpers on top of core/error that attach the module and
//              operation to every error and pick the matching code. Data
//              structures raise validation errors through InvalidInput,
//              InvalidFormat and OutOfRange; computations that leave their
//              ceiling raise Overflow.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-03
// Modified: 2026-09-14
//
// Change History:
// - 2026-09-03 v0.1.0: Initial constructors and ErrorBuilder
// - 2026-09-14 v0.2.0: Overflow and EmptyStructure
//
// Usage:
//
//	err := errors.OutOfRange(errors.ModuleTower, "Build", height, 0, maxHeight)
//
//	err = errors.NewErrorBuilder(errors.ModuleGrid).
//		Operation("AddNode").
//		Code(mzwerror.CodeValueOutOfRange).
//		Messagef("negative argument m=%d", m).
//		Build()
package errors
