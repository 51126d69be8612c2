package domain

// Clone returns a deep copy of the case. The engine clones before every
// mutation so that callers holding the previous value never observe changes.
func (c Case) Clone() Case {
	out := c

	out.Team = make([]TeamMember, len(c.Team))
	copy(out.Team, c.Team)
	out.Events = make([]TimelineEvent, len(c.Events))
	copy(out.Events, c.Events)

	out.Photos = make([]PhotoEvidence, len(c.Photos))
	for i, p := range c.Photos {
		p.Tags = append([]string(nil), p.Tags...)
		out.Photos[i] = p
	}

	out.FieldValues = make([]FieldValue, len(c.FieldValues))
	for i, fv := range c.FieldValues {
		fv.Sources = append([]string(nil), fv.Sources...)
		if fv.Confidence != nil {
			conf := *fv.Confidence
			fv.Confidence = &conf
		}
		out.FieldValues[i] = fv
	}

	out.AIExtractions = make([]AIExtraction, len(c.AIExtractions))
	for i, ex := range c.AIExtractions {
		ex.SourceEvidenceIDs = append([]string(nil), ex.SourceEvidenceIDs...)
		out.AIExtractions[i] = ex
	}

	out.Recognition.CompletedSections = make([]string, len(c.Recognition.CompletedSections))
	copy(out.Recognition.CompletedSections, c.Recognition.CompletedSections)
	out.PhotoReport.SelectedPhotos = make([]SelectedPhoto, len(c.PhotoReport.SelectedPhotos))
	copy(out.PhotoReport.SelectedPhotos, c.PhotoReport.SelectedPhotos)

	out.ReportBlocks = make([]ReportBlock, len(c.ReportBlocks))
	for i, b := range c.ReportBlocks {
		b.ReferencedFieldKeys = append([]string(nil), b.ReferencedFieldKeys...)
		b.ReferencedPhotoIDs = append([]string(nil), b.ReferencedPhotoIDs...)
		out.ReportBlocks[i] = b
	}

	out.Signatures.Signers = append([]Signer(nil), c.Signatures.Signers...)
	out.GeneratedPDFs = make([]GeneratedPDF, len(c.GeneratedPDFs))
	copy(out.GeneratedPDFs, c.GeneratedPDFs)

	out.AuditLog = make([]AuditEvent, len(c.AuditLog))
	for i, ev := range c.AuditLog {
		if ev.Details != nil {
			details := make(map[string]string, len(ev.Details))
			for k, v := range ev.Details {
				details[k] = v
			}
			ev.Details = details
		}
		out.AuditLog[i] = ev
	}

	return out
}
