// Package markdown loads Markdown documents with YAML frontmatter from a
// filesystem and renders them through goldmark. Template variables
// ({{> name content }} / {{ name }}) are enabled by default and every
// rendered document carries a report of the variables it defined.
package markdown
