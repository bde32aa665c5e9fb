// Copyright (C) 2024 uubed-go authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package uubed is the root of the position-safe embedding codec family:
// q64 (the base codec), sketch/simhash, sketch/topk, sketch/zorder, and
// sketch/mq64 (the derived sketches), and batch (the parallel driver). The
// C ABI (cmd/libuubed) and buffer-protocol surface (ffi/bufview) are thin
// layers over these packages.
package uubed

// Version is the semver string reported by the C ABI's get_version. Any
// external pkg-config descriptor for this library (packaging concern,
// out of scope for this module) should read the same value rather than
// keeping an independent copy.
const Version = "0.1.0"
