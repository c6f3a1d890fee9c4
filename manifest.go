package routegen

import (
	"encoding/json"
	"io"

	"dario.cat/mergo"
	"gopkg.in/yaml.v2"
)

// ManifestEntry is one flattened route in declaration order.
type ManifestEntry struct {
	Name     string   `yaml:"name" json:"name"`
	Pattern  string   `yaml:"pattern" json:"pattern"`
	Params   []string `yaml:"params,omitempty" json:"params,omitempty"`
	Layout   string   `yaml:"layout,omitempty" json:"layout,omitempty"`
	View     string   `yaml:"view,omitempty" json:"view,omitempty"`
	Fallback string   `yaml:"fallback,omitempty" json:"fallback,omitempty"`
	Leaf     bool     `yaml:"leaf" json:"leaf"`
}

// Manifest flattens the descriptor hierarchy into declaration-ordered
// entries: every route with its full pattern and parameter chain.
func (c *Compilation) Manifest() []ManifestEntry {
	entries := make([]ManifestEntry, 0, len(c.Descriptors))
	for _, d := range c.Descriptors {
		node := d.Node()
		entry := ManifestEntry{
			Name:    d.Name(),
			Pattern: d.FullPattern(),
			Params:  d.ParamNames(),
			Leaf:    node.Leaf(),
		}
		if node.Binding != nil {
			entry.Layout = node.Binding.Layout
			entry.View = node.Binding.View
			entry.Fallback = node.Binding.Fallback
		}
		entries = append(entries, entry)
	}
	return entries
}

// ManifestDoc returns the manifest as a document map ready for YAML or
// JSON rendering. Overlay maps merge over the generated base, overlays
// winning, so callers can attach deployment metadata without
// rebuilding the document.
func (c *Compilation) ManifestDoc(overlays ...map[string]any) (map[string]any, error) {
	doc := map[string]any{
		"routes": c.Manifest(),
	}

	for _, overlay := range overlays {
		if len(overlay) == 0 {
			continue
		}
		if err := mergo.Merge(&doc, overlay, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
			return nil, wrapArtifactError(err, "failed to merge manifest overlay")
		}
	}

	return doc, nil
}

// ManifestYAML renders the manifest document as YAML.
func (c *Compilation) ManifestYAML(overlays ...map[string]any) ([]byte, error) {
	doc, err := c.ManifestDoc(overlays...)
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, wrapArtifactError(err, "failed to render manifest YAML")
	}
	return out, nil
}

// ManifestJSON renders the manifest document as indented JSON.
func (c *Compilation) ManifestJSON(overlays ...map[string]any) ([]byte, error) {
	doc, err := c.ManifestDoc(overlays...)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, wrapArtifactError(err, "failed to render manifest JSON")
	}
	return out, nil
}

// WriteManifest writes the YAML manifest to w.
func (c *Compilation) WriteManifest(w io.Writer, overlays ...map[string]any) error {
	out, err := c.ManifestYAML(overlays...)
	if err != nil {
		return err
	}

	if _, err := w.Write(out); err != nil {
		return wrapArtifactError(err, "failed to write manifest")
	}
	return nil
}
