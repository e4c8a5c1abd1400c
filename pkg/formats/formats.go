// Package formats provides parsers and writers for the mesh and weight files
// consumed by the viewer.
//
// Meshes are Wavefront OBJ files restricted to positions, normals and faces;
// polygons are fan-triangulated on load. Weight files hold one float per line.
package formats
