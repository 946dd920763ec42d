package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/farixgo/engine/internal/asset"
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	"github.com/farixgo/engine/internal/scene"
	"github.com/farixgo/engine/internal/scripting"
)

// buildPong fills s with the pong demo: a camera, a light, a ball, two
// paddles and a title label. Paddles and ball are driven by the Lua scripts
// under scripts/pong.
func buildPong(s *scene.Scene, lib *asset.Library, scripts *scripting.Registry, aspect float32) error {
	w := s.World()

	paddleMesh, err := lib.LoadMesh(asset.MeshEntry{Kind: asset.MeshBox, Size: [3]float32{1.6, 0.3, 0.3}})
	if err != nil {
		return fmt.Errorf("paddle mesh: %w", err)
	}
	ballMesh, err := lib.LoadMesh(asset.MeshEntry{Kind: asset.MeshSphere, Radius: 0.2, Lat: 8, Lon: 12})
	if err != nil {
		return fmt.Errorf("ball mesh: %w", err)
	}
	font, err := lib.LoadFont(asset.FontEntry{Name: asset.DefaultFont, Size: 8})
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}

	cam := s.CreateObject()
	cam.SetName("Camera")
	cam.Transform().Position = mgl32.Vec3{0, 0, 7}
	camera := component.NewCamera()
	camera.Aspect = aspect
	camera.Fov = mgl32.DegToRad(75)
	ecs.AddComponent(w, cam.Entity, camera)
	w.SetCameraEntity(cam.Entity)

	sun := s.CreateObject()
	sun.SetName("Sun")
	light := component.NewLight()
	light.Direction = mgl32.Vec3{-0.4, -0.6, -1}.Normalize()
	ecs.AddComponent(w, sun.Entity, light)

	ball := s.CreateObject()
	ball.SetName("Ball")
	ecs.AddComponent(w, ball.Entity, component.Mesh{UUID: ballMesh.UUID, Mesh: ballMesh})
	mat := component.NewMaterial()
	mat.BaseColor = mgl32.Vec4{1, 0.85, 0.2, 1}
	ecs.AddComponent(w, ball.Entity, mat)
	ecs.AddComponent(w, ball.Entity, component.NewRigidBody())
	col := component.NewCollider()
	col.Shape = component.ShapeSphere
	col.Radius = 0.2
	ecs.AddComponent(w, ball.Entity, col)

	paddles := []struct {
		name   string
		y      float32
		color  mgl32.Vec4
		script string
	}{
		{"Player", -3, mgl32.Vec4{0.2, 0.6, 1, 1}, "PlayerPaddleScript"},
		{"Opponent", 3, mgl32.Vec4{1, 0.3, 0.3, 1}, "OpponentPaddleScript"},
	}
	for _, p := range paddles {
		obj := s.CreateObject()
		obj.SetName(p.name)
		obj.AddTag("Paddle")
		obj.Transform().Position = mgl32.Vec3{0, p.y, 0}
		ecs.AddComponent(w, obj.Entity, component.Mesh{UUID: paddleMesh.UUID, Mesh: paddleMesh})
		m := component.NewMaterial()
		m.BaseColor = p.color
		ecs.AddComponent(w, obj.Entity, m)
		pc := component.NewCollider()
		pc.Size = mgl32.Vec3{1.6, 0.3, 0.3}
		ecs.AddComponent(w, obj.Entity, pc)
		if err := attach(obj, scripts, p.script); err != nil {
			return err
		}
	}

	label := s.CreateObject()
	label.SetName("Title")
	ecs.AddComponent(w, label.Entity, component.UI{Anchor: component.AnchorTopLeft, Visible: true})
	rect := component.NewRect()
	rect.Position = mgl32.Vec3{4, 4, 0}
	ecs.AddComponent(w, label.Entity, rect)
	txt := component.NewUIText("PONG  A/D to move")
	txt.FontSize = 8
	txt.Font = font
	txt.FontUUID = font.UUID
	ecs.AddComponent(w, label.Entity, txt)

	// The ball script goes last so the paddles exist when it starts.
	return attach(ball, scripts, "BallScript")
}

func attach(obj ecs.GameObject, scripts *scripting.Registry, name string) error {
	sc, err := scripts.Create(name)
	if err != nil {
		return fmt.Errorf("%s on %s: %w", name, obj.Name(), err)
	}
	obj.AddScript(sc)
	return nil
}
