// SPDX-License-Identifier: GPL-3.0-or-later

package sfsconn

import (
	"fmt"
	"slices"
)

// Architecture is a processor architecture a package applies to.
type Architecture int

// Known architectures.
const (
	ArchitectureNone Architecture = iota
	ArchitectureX86
	ArchitectureAmd64
	ArchitectureArm
	ArchitectureArm64
)

// String returns the feed representation of the architecture.
func (a Architecture) String() string {
	switch a {
	case ArchitectureNone:
		return "None"
	case ArchitectureX86:
		return "x86"
	case ArchitectureAmd64:
		return "amd64"
	case ArchitectureArm:
		return "arm"
	case ArchitectureArm64:
		return "arm64"
	default:
		return fmt.Sprintf("Architecture(%d)", int(a))
	}
}

func (a Architecture) valid() bool {
	return a >= ArchitectureNone && a <= ArchitectureArm64
}

// ApplicabilityDetails describes where a package applies: the matching
// architectures, the per-package platform applicability strings, and the
// file moniker identifying the package.
//
// The value is immutable. Construct using [NewApplicabilityDetails].
type ApplicabilityDetails struct {
	architectures                   []Architecture
	platformApplicabilityForPackage []string
	fileMoniker                     string
}

// NewApplicabilityDetails returns a new [*ApplicabilityDetails].
//
// The slices are copied, so the caller may reuse them. Returns an [*Error]
// with code [InvalidArgument] for an unknown architecture.
func NewApplicabilityDetails(architectures []Architecture,
	platformApplicabilityForPackage []string, fileMoniker string) (*ApplicabilityDetails, error) {
	for _, arch := range architectures {
		if !arch.valid() {
			return nil, E(InvalidArgument, fmt.Sprintf("unknown architecture: %s", arch))
		}
	}
	ad := &ApplicabilityDetails{
		architectures:                   slices.Clone(architectures),
		platformApplicabilityForPackage: slices.Clone(platformApplicabilityForPackage),
		fileMoniker:                     fileMoniker,
	}
	return ad, nil
}

// Architectures returns a copy of the architectures.
func (ad *ApplicabilityDetails) Architectures() []Architecture {
	return slices.Clone(ad.architectures)
}

// PlatformApplicabilityForPackage returns a copy of the platform
// applicability strings, in order.
func (ad *ApplicabilityDetails) PlatformApplicabilityForPackage() []string {
	return slices.Clone(ad.platformApplicabilityForPackage)
}

// FileMoniker returns the file moniker.
func (ad *ApplicabilityDetails) FileMoniker() string {
	return ad.fileMoniker
}
