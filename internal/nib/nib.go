// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package nib holds the small bit-twiddling helpers the framing code needs
// to split bytes into nibbles.
package nib

// High returns the upper nibble of b, in the low four bits of the result.
func High(b byte) byte { return b >> 4 }

// Low returns the lower nibble of b.
func Low(b byte) byte { return b & 0x0f }
