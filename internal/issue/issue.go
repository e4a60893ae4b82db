// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies an issue guide.
type Id int

const (
	FeatureFileNotFoundId Id = iota + 1
	FeatureFileParseErrorId
	ChecksumMismatchId
	FeatureFileInvalidId
	UserFileInvalidId
	ConfigLoadFailedId
	SectionNotFoundId
	InvalidVersionId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guide with the given glamour style ("auto", "dark",
// "light", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	featureFileNotFoundIssue = &Issue{
		id: FeatureFileNotFoundId,
		mdMsg: `
# Feature file not found!

Compass needs the feature file that ships with each release to know which
features every Babelfish version supports.

## Things you can try:
- Pass the file explicitly:
~~~
$ compass check --feature-file /path/to/BabelfishFeatures.cfg
~~~

- Or set it once in your configuration:
~~~cue
feature_file: "/path/to/BabelfishFeatures.cfg"
~~~`,
	}

	featureFileParseErrorIssue = &Issue{
		id: FeatureFileParseErrorId,
		mdMsg: `
# The feature file could not be read!

A line of the file does not follow the expected layout. Every line must be
one of:

~~~
[Section name]
KEY=value1,value2
# comment
~~~

## Things you can try:
- Look at the line number in the error message
- Check for a missing closing bracket or a missing '='
- Restore the file from the release archive`,
	}

	checksumMismatchIssue = &Issue{
		id: ChecksumMismatchId,
		mdMsg: `
# The feature file has been modified!

The feature file is protected by a checksum in its last line. The stored value
does not match the contents, which means the file was edited by hand or was
damaged.

## Things you can try:
- Restore the file from the release archive
- Put your changes in the user file instead; it supports
  DEFAULT_CLASSIFICATION and REPORT_GROUP overrides:
~~~
$ compass user sync
~~~

- If you maintain the feature file, reseal it:
~~~
$ compass checksum BabelfishFeatures.cfg
~~~`,
	}

	featureFileInvalidIssue = &Issue{
		id: FeatureFileInvalidId,
		mdMsg: `
# The feature file contains errors!

The file was read, but some keys are not valid. All problems found are listed
above the guide. No assessment is made against an invalid feature file.

## Common causes:
- A SUPPORTED key names a version that is not in VALID_VERSIONS
- An item is used in a key but missing from the section's LIST
- A DEFAULT_CLASSIFICATION value is not a known classification`,
	}

	userFileInvalidIssue = &Issue{
		id: UserFileInvalidId,
		mdMsg: `
# The user file contains errors!

Only two kinds of keys may appear in the user file:

~~~
[Section name]
DEFAULT_CLASSIFICATION-ReviewManually=ITEM1,ITEM2
REPORT_GROUP-My group=ITEM3
~~~

## Things you can try:
- Check that every section name exists in the feature file
- Remove keys other than DEFAULT_CLASSIFICATION and REPORT_GROUP
- Check that every item is listed in the section's LIST
- Valid classifications are ReviewSemantics, ReviewPerformance,
  ReviewManually, Ignored and NotSupported`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Check the CUE syntax of your config file
- Show the effective configuration:
~~~
$ compass config show
~~~

- Recreate a default file:
~~~
$ compass config init
~~~`,
	}

	sectionNotFoundIssue = &Issue{
		id: SectionNotFoundId,
		mdMsg: `
# Section not found!

Section names are matched without regard to case, but otherwise must be
spelled exactly as in the feature file.

## Things you can try:
- List the known sections:
~~~
$ compass list
~~~`,
	}

	invalidVersionIssue = &Issue{
		id: InvalidVersionId,
		mdMsg: `
# Invalid version!

Versions are dotted numbers such as 2.3.0.

## Things you can try:
- List the versions known to the feature file:
~~~
$ compass versions
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

Compass could not write a file it maintains.

## Common causes:
- The user file lives in a directory you cannot write to
- The feature file is read-only while updating its checksum

## Things you can try:
- Check file and directory permissions
- Point user_file at a writable location in your config`,
	}

	issues = map[Id]*Issue{
		featureFileNotFoundIssue.Id():   featureFileNotFoundIssue,
		featureFileParseErrorIssue.Id(): featureFileParseErrorIssue,
		checksumMismatchIssue.Id():      checksumMismatchIssue,
		featureFileInvalidIssue.Id():    featureFileInvalidIssue,
		userFileInvalidIssue.Id():       userFileInvalidIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		sectionNotFoundIssue.Id():       sectionNotFoundIssue,
		invalidVersionIssue.Id():        invalidVersionIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
