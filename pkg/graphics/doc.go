// Package graphics provides the affine-transform and linear-algebra core used by
// the Ragnarok Online asset parsers: vectors, quaternions, 3x3 and 4x4 matrices,
// bounding boxes and the little-endian byte layouts these are stored in.
//
// Matrix4 is stored row-major (element [row,col] at index 4*row+col) with the
// translation in row 3 (indices 12, 13, 14). A point is transformed as
//
//	x' = m[0]*x + m[4]*y + m[8]*z + m[12]
//	y' = m[1]*x + m[5]*y + m[9]*z + m[13]
//	z' = m[2]*x + m[6]*y + m[10]*z + m[14]
//
// Multiply(a, b) returns the transform that applies b first and a second.
//
// Numeric degeneracies are not errors. Normalizing a zero vector or quaternion
// yields NaN or Inf components; callers that need a guard check Length first.
package graphics
