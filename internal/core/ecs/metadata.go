package ecs

import (
	"slices"

	"github.com/google/uuid"
)

// Metadata carries an entity's stable UUID, display name, tags and the prefab
// it was instantiated from. It is created on the first SetName or AddTag call.
type Metadata struct {
	UUID   string   `json:"uuid"`
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
	Prefab string   `json:"prefab,omitempty"`
}

// NewUUID returns a random version 4 UUID string.
func NewUUID() string { return uuid.NewString() }

func (w *World) metadata(e Entity) *Metadata {
	if m, ok := TryComponent[Metadata](w, e); ok {
		return m
	}
	return AddComponent(w, e, Metadata{UUID: NewUUID()})
}

func (w *World) SetName(e Entity, name string) {
	w.metadata(e).Name = name
}

// Name returns e's name, or "" when it has none.
func (w *World) Name(e Entity) string {
	if m, ok := TryComponent[Metadata](w, e); ok {
		return m.Name
	}
	return ""
}

// AddTag adds tag to e. Tags are kept unique.
func (w *World) AddTag(e Entity, tag string) {
	m := w.metadata(e)
	if !slices.Contains(m.Tags, tag) {
		m.Tags = append(m.Tags, tag)
	}
}

func (w *World) RemoveTag(e Entity, tag string) {
	if m, ok := TryComponent[Metadata](w, e); ok {
		m.Tags = slices.DeleteFunc(m.Tags, func(t string) bool { return t == tag })
	}
}

func (w *World) HasTag(e Entity, tag string) bool {
	m, ok := TryComponent[Metadata](w, e)
	return ok && slices.Contains(m.Tags, tag)
}

// EntitiesByName scans the live list for entities named name.
func (w *World) EntitiesByName(name string) []Entity {
	var out []Entity
	for _, e := range View1[Metadata](w) {
		if GetComponent[Metadata](w, e).Name == name {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesByTags returns entities carrying every one of tags.
func (w *World) EntitiesByTags(tags ...string) []Entity {
	var out []Entity
	for _, e := range View1[Metadata](w) {
		m := GetComponent[Metadata](w, e)
		match := true
		for _, t := range tags {
			if !slices.Contains(m.Tags, t) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}
