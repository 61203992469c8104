// SPDX-License-Identifier: MPL-2.0

package ecosystem

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// FamilyNode groups JavaScript/TypeScript facets.
	FamilyNode Family = "node"
	// FamilyPython groups Python facets.
	FamilyPython Family = "python"
	// FamilyJVM groups Maven/Gradle facets.
	FamilyJVM Family = "jvm"
	// FamilyRust groups Cargo facets.
	FamilyRust Family = "rust"
	// FamilyGo groups Go module facets.
	FamilyGo Family = "go"
	// FamilyDotnet groups .NET facets.
	FamilyDotnet Family = "dotnet"
	// FamilyUnknown is reported for tags outside the closed vocabulary.
	FamilyUnknown Family = "unknown"
)

const (
	// TagNodeJS marks a directory with a package.json.
	TagNodeJS Tag = "nodejs"
	// TagPython marks a directory with Python project indicators.
	TagPython Tag = "python"
	// TagUV marks a Python project managed by uv (uv.lock present).
	TagUV Tag = "uv"
	// TagPoetry marks a Python project managed by Poetry.
	TagPoetry Tag = "poetry"
	// TagMaven marks a directory with a pom.xml.
	TagMaven Tag = "maven"
	// TagMavenWrapper marks a Maven project carrying mvnw/mvnw.cmd.
	TagMavenWrapper Tag = "maven-wrapper"
	// TagMavenMultiModule marks a pom.xml that declares <modules>.
	TagMavenMultiModule Tag = "maven-multi-module"
	// TagGradle marks a directory with a Groovy-DSL Gradle build.
	TagGradle Tag = "gradle"
	// TagGradleKotlinDSL marks a directory with a Kotlin-DSL Gradle build.
	TagGradleKotlinDSL Tag = "gradle-kotlin-dsl"
	// TagGradleWrapper marks a Gradle project carrying gradlew/gradlew.bat.
	TagGradleWrapper Tag = "gradle-wrapper"
	// TagRust marks a directory with a Cargo.toml.
	TagRust Tag = "rust"
	// TagGo marks a directory with a go.mod.
	TagGo Tag = "golang"
	// TagDotnet marks a directory with a .csproj or .sln file.
	TagDotnet Tag = "dotnet"
)

// ErrInvalidTag is the sentinel error wrapped by InvalidTagError.
var ErrInvalidTag = errors.New("invalid ecosystem tag")

type (
	// Tag identifies one detected technology facet of a directory. A
	// directory may carry many tags simultaneously (a polyglot package, or
	// one ecosystem with several sub-facets such as maven + maven-wrapper).
	Tag string

	// Family groups related tags; emission order of detection results is
	// fixed per family so two runs over identical evidence produce
	// byte-identical tag lists.
	Family string

	// InvalidTagError is returned when a Tag value is outside the closed
	// vocabulary. It wraps ErrInvalidTag for errors.Is() compatibility.
	InvalidTagError struct {
		Value Tag
	}
)

// tagOrder fixes the canonical emission order: node family first, then
// python, jvm, rust, go, dotnet, with sub-facets after their base tag.
var tagOrder = []Tag{
	TagNodeJS,
	TagPython, TagUV, TagPoetry,
	TagMaven, TagMavenWrapper, TagMavenMultiModule,
	TagGradle, TagGradleKotlinDSL, TagGradleWrapper,
	TagRust,
	TagGo,
	TagDotnet,
}

// tagRank maps each known tag to its position in tagOrder.
var tagRank = func() map[Tag]int {
	m := make(map[Tag]int, len(tagOrder))
	for i, tag := range tagOrder {
		m[tag] = i
	}
	return m
}()

// String returns the string representation of the Tag.
func (t Tag) String() string { return string(t) }

// IsValid returns whether the Tag is one of the defined vocabulary values,
// and a list of validation errors if it is not.
func (t Tag) IsValid() (bool, []error) {
	if _, ok := tagRank[t]; !ok {
		return false, []error{&InvalidTagError{Value: t}}
	}
	return true, nil
}

// Family returns the family a tag belongs to, or FamilyUnknown for tags
// outside the closed vocabulary.
func (t Tag) Family() Family {
	switch t {
	case TagNodeJS:
		return FamilyNode
	case TagPython, TagUV, TagPoetry:
		return FamilyPython
	case TagMaven, TagMavenWrapper, TagMavenMultiModule,
		TagGradle, TagGradleKotlinDSL, TagGradleWrapper:
		return FamilyJVM
	case TagRust:
		return FamilyRust
	case TagGo:
		return FamilyGo
	case TagDotnet:
		return FamilyDotnet
	default:
		return FamilyUnknown
	}
}

// String returns the string representation of the Family.
func (f Family) String() string { return string(f) }

// Sort orders tags into the canonical emission order in place. Unknown tags
// sort after all known tags, alphabetically, so they still order
// deterministically.
func Sort(tags []Tag) {
	sort.SliceStable(tags, func(i, j int) bool {
		ri, iKnown := tagRank[tags[i]]
		rj, jKnown := tagRank[tags[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return tags[i] < tags[j]
		}
	})
}

// Error implements the error interface for InvalidTagError.
func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid ecosystem tag %q", e.Value)
}

// Unwrap returns ErrInvalidTag for errors.Is() compatibility.
func (e *InvalidTagError) Unwrap() error { return ErrInvalidTag }
