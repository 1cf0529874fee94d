package core

// integratedContext is the fixed @context list merged into every integrated
// view and identity projection.
var integratedContext = []string{
	"https://www.w3.org/ns/did/v1",
	"https://w3id.org/security/v2",
	"https://schema.org",
	"https://www.w3.org/ns/prov-o",
	"https://www.w3.org/ns/odrl/2/",
}

// ProjectIdentity renders the identity layer as a standard-identity-document
// object with the fixed @context.
func (b *MetadataBundle) ProjectIdentity() map[string]interface{} {
	l, ok := b.layers[LayerIdentity]
	if !ok {
		return nil
	}
	out := map[string]interface{}{"@context": integratedContext}
	for k, v := range l.Data {
		out[k] = v
	}
	return out
}

// ProjectProvenance exposes the raw claim/signature tree for the provenance
// layer.
func (b *MetadataBundle) ProjectProvenance() map[string]interface{} {
	l, ok := b.layers[LayerProvenance]
	if !ok {
		return nil
	}
	return l.Data
}

// AddAssertion appends an assertion to the provenance layer's
// claim.assertions array.
func (b *MetadataBundle) AddAssertion(assertionType string, data map[string]interface{}) error {
	l, ok := b.layers[LayerProvenance]
	if !ok {
		return ErrInvalidProvenanceLayer
	}
	claim, ok := l.Data["claim"].(map[string]interface{})
	if !ok {
		claim = map[string]interface{}{}
		l.Data["claim"] = claim
	}
	assertions, _ := claim["assertions"].([]interface{})
	assertions = append(assertions, map[string]interface{}{"type": assertionType, "data": data})
	claim["assertions"] = assertions
	return nil
}

// ProjectCharacteristics renders the characteristics layer as a schema-org-
// style object: ai-model → SoftwareApplication with
// applicationCategory='AI Model'; dataset → Dataset with variableMeasured
// and distribution; else → CreativeWork.
func (b *MetadataBundle) ProjectCharacteristics() map[string]interface{} {
	l, ok := b.layers[LayerCharacteristics]
	if !ok {
		return nil
	}
	rt, _ := l.Data["resourceType"].(string)

	out := map[string]interface{}{}
	for k, v := range l.Data {
		out[k] = v
	}

	switch ResourceType(rt) {
	case ResourceAIModel:
		out["@type"] = "SoftwareApplication"
		out["applicationCategory"] = "AI Model"
	case ResourceDataset:
		out["@type"] = "Dataset"
		if _, ok := out["variableMeasured"]; !ok {
			out["variableMeasured"] = []interface{}{}
		}
		if _, ok := out["distribution"]; !ok {
			out["distribution"] = []interface{}{}
		}
	default:
		out["@type"] = "CreativeWork"
	}
	return out
}

// ProjectLineage renders the lineage layer as an entity/activity/agent plus
// wasGeneratedBy/used/wasAttributedTo/wasDerivedFrom/wasAssociatedWith
// object, indexed by participant identifier.
func (b *MetadataBundle) ProjectLineage() map[string]interface{} {
	l, ok := b.layers[LayerLineage]
	if !ok {
		return nil
	}
	out := map[string]interface{}{}
	for _, key := range []string{"entity", "activity", "agent",
		"wasGeneratedBy", "used", "wasAttributedTo", "wasDerivedFrom", "wasAssociatedWith"} {
		if v, ok := l.Data[key]; ok {
			out[key] = v
		}
	}
	return out
}

// ProjectRights renders the rights layer as a policy object with
// permission/prohibition/obligation arrays, each carrying action and
// constraint records.
func (b *MetadataBundle) ProjectRights() map[string]interface{} {
	l, ok := b.layers[LayerRights]
	if !ok {
		return nil
	}
	out := map[string]interface{}{}
	if lic, ok := l.Data["license"]; ok {
		out["license"] = lic
	}
	for _, key := range []string{"permission", "prohibition", "obligation"} {
		if v, ok := l.Data[key]; ok {
			out[key] = v
		} else {
			out[key] = []interface{}{}
		}
	}
	return out
}

// IntegratedView merges the fixed @context with the identity projection,
// the provenance sub-object, the characteristics projection (keyed by its
// schema.org @type), the lineage sub-object, and the rights sub-object.
func (b *MetadataBundle) IntegratedView() map[string]interface{} {
	out := map[string]interface{}{"@context": integratedContext}

	if id := b.ProjectIdentity(); id != nil {
		for k, v := range id {
			if k == "@context" {
				continue
			}
			out[k] = v
		}
	}
	if prov := b.ProjectProvenance(); prov != nil {
		out["provenance"] = prov
	}
	if char := b.ProjectCharacteristics(); char != nil {
		key := "characteristics"
		if t, ok := char["@type"].(string); ok {
			key = t
		}
		out[key] = char
	}
	if lineage := b.ProjectLineage(); lineage != nil {
		out["lineage"] = lineage
	}
	if rights := b.ProjectRights(); rights != nil {
		out["rights"] = rights
	}
	return out
}

// MetadataHash computes hex(SHA-256(canonical-json(integratedMetadata))),
// the digest handed to the registry collaborator at registration time.
func MetadataHash(integratedMetadata map[string]interface{}) (string, error) {
	b, err := CanonicalJSON(integratedMetadata)
	if err != nil {
		return "", err
	}
	d := Digest(b)
	return Encode(d[:], EncodingHex)
}
