package rend3dgl

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/buffers"
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/lights"
	"github.com/bloeys/nrend/logging"
	"github.com/bloeys/nrend/meshes"
	"github.com/bloeys/nrend/renderer"
	"github.com/bloeys/nrend/shaders"
)

var _ renderer.Render = &Rend3DGL{}

// Rend3DGL draws primitives. GPU objects are created the first time a primitive is drawn:
// one buffer per ByteBuffer (so primitives made with FromExisting share it) and one vertex array per primitive.
type Rend3DGL struct {
	BoundVaoId uint32
	BoundMatId uint32

	ctx    glctx.Context
	cache  *shaders.ProgramCache
	lights *lights.LightBuffer

	vbos map[*buffers.ByteBuffer]*buffers.VertexBuffer
	vaos map[*meshes.Primitive]*buffers.VertexArray
}

func (r *Rend3DGL) DrawPrimitive(prim *meshes.Primitive, modelView, proj *gglm.Mat4) error {

	if prim == nil {
		return &meshes.MissingArgumentError{Arg: "primitive"}
	}

	mat := prim.Material
	if mat == nil {
		return &meshes.MissingArgumentError{Arg: "material"}
	}

	if mat.NeedsCompile() {

		if err := mat.Compile(r.cache); err != nil {
			return err
		}

		// Same material id but possibly a new program
		r.BoundMatId = 0
	}

	vao := r.vertexArrayOf(prim)
	if vao.Id != r.BoundVaoId {
		vao.Bind()
		r.BoundVaoId = vao.Id
	}

	if mat.Id != r.BoundMatId {

		if err := mat.Bind(r.ctx); err != nil {
			return err
		}

		if r.lights != nil {
			mat.Program.BindUniformBlock(shaders.LightBlockName, r.lights.BindPoint())
		}

		r.BoundMatId = mat.Id
	}

	if _, ok := mat.Program.UnifLoc(shaders.Unif_ModelViewMatrix); ok {
		mat.SetUnifMat4(shaders.Unif_ModelViewMatrix, modelView)
	}

	if _, ok := mat.Program.UnifLoc(shaders.Unif_ModelViewProjectionMatrix); ok {
		mvp := proj.Clone().Mul(modelView)
		mat.SetUnifMat4(shaders.Unif_ModelViewProjectionMatrix, mvp)
	}

	if _, ok := mat.Program.UnifLoc(shaders.Unif_NormalMatrix); ok {
		mvTr := gglm.TrMat{Mat4: *modelView}
		normalMat := mvTr.Clone().InvertAndTranspose().ToMat3()
		mat.SetUnifMat3(shaders.Unif_NormalMatrix, &normalMat)
	}

	if vao.HasIndices() {
		r.ctx.DrawElements(prim.Mode.ToGL(), vao.IndexBuffer.IndexBufCount, vao.IndexBuffer.IndexType, vao.IndexBuffer.ByteOffset)
	} else {
		r.ctx.DrawArrays(prim.Mode.ToGL(), 0, int32(prim.VertexCount()))
	}

	return nil
}

func (r *Rend3DGL) DrawCubemap(prim *meshes.Primitive, view, proj *gglm.Mat4) error {

	rotOnly := *view
	rotOnly.Data[3][0] = 0
	rotOnly.Data[3][1] = 0
	rotOnly.Data[3][2] = 0

	return r.DrawPrimitive(prim, &rotOnly, proj)
}

func (r *Rend3DGL) SetLights(lb *lights.LightBuffer) {
	r.lights = lb
	// Programs get the block binding on their next bind
	r.BoundMatId = 0
}

func (r *Rend3DGL) vertexArrayOf(prim *meshes.Primitive) *buffers.VertexArray {

	if vao, ok := r.vaos[prim]; ok {
		return vao
	}

	vao := buffers.NewVertexArray(r.ctx)
	for name, acc := range prim.Attributes {

		loc, ok := meshes.AttribLocations[name]
		if !ok {
			logging.WarnLog.Printf("Attribute '%s' has no shader location and will not be uploaded\n", name)
			continue
		}

		vao.AddAccessor(loc, r.vertexBufferOf(acc.BufferView), acc)
	}

	if prim.Indices != nil {
		vbo := r.vertexBufferOf(prim.Indices.BufferView)
		vao.SetIndexBuffer(buffers.NewIndexBuffer(r.ctx, vbo, prim.Indices))
	}

	r.vaos[prim] = &vao

	// Creating the vertex array left it bound
	r.BoundVaoId = vao.Id
	return &vao
}

func (r *Rend3DGL) vertexBufferOf(bb *buffers.ByteBuffer) *buffers.VertexBuffer {

	if vbo, ok := r.vbos[bb]; ok {
		return vbo
	}

	vbo := buffers.NewVertexBuffer(r.ctx)
	vbo.SetData(bb.Bytes(), buffers.BufUsage_Static_Draw)
	r.vbos[bb] = &vbo
	return &vbo
}

// Forget releases the vertex array of prim. Buffers are kept as other primitives may share them.
func (r *Rend3DGL) Forget(prim *meshes.Primitive) {

	vao, ok := r.vaos[prim]
	if !ok {
		return
	}

	if vao.Id == r.BoundVaoId {
		r.BoundVaoId = 0
	}

	vao.Delete()
	delete(r.vaos, prim)
}

func (r *Rend3DGL) FrameEnd() {
	r.BoundVaoId = 0
	r.BoundMatId = 0
}

func (r *Rend3DGL) Delete() {

	for prim, vao := range r.vaos {
		vao.Delete()
		delete(r.vaos, prim)
	}

	for bb, vbo := range r.vbos {
		vbo.Delete()
		delete(r.vbos, bb)
	}

	r.BoundVaoId = 0
	r.BoundMatId = 0
}

func NewRend3DGL(ctx glctx.Context, cache *shaders.ProgramCache) *Rend3DGL {
	return &Rend3DGL{
		ctx:   ctx,
		cache: cache,
		vbos:  map[*buffers.ByteBuffer]*buffers.VertexBuffer{},
		vaos:  map[*meshes.Primitive]*buffers.VertexArray{},
	}
}
